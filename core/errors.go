package core

import "fmt"

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 使用场景：
//   - Catalog 错误：NOT_FOUND, EMPTY_CATALOG
//   - 推荐参数错误：INVALID_PARAMETER
//   - Store 错误：NOT_FOUND, NOT_SUPPORTED
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND", "EMPTY_CATALOG"）
	Message string // 错误消息
	Module  string // 模块名称（如 "catalog", "recall", "store"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// GetDomainError 获取 DomainError，如果不是则返回 nil。
func GetDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	if domainErr, ok := err.(*DomainError); ok {
		return domainErr
	}
	return nil
}

// NewDomainError 创建新的领域错误。
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// 错误代码常量
const (
	ErrorCodeNotFound         = "NOT_FOUND"          // 资源不存在
	ErrorCodeEmptyCatalog     = "EMPTY_CATALOG"      // 可推荐产品不足
	ErrorCodeInvalidParameter = "INVALID_PARAMETER"  // 请求参数无效
	ErrorCodeNotSupported     = "NOT_SUPPORTED"      // 操作不支持
	ErrorCodeInternalError    = "INTERNAL_ERROR"     // 内部错误
)

// 模块名称常量
const (
	ModuleCatalog = "catalog" // 产品目录模块
	ModuleRecall  = "recall"  // 召回模块
	ModuleStore   = "store"   // 存储模块
	ModuleFeature = "feature" // 特征模块
)

// NewProductNotFound 创建“产品不存在”错误（查询 ID 不在目录中）。
func NewProductNotFound(productID string) *DomainError {
	return NewDomainError(ModuleCatalog, ErrorCodeNotFound,
		fmt.Sprintf("catalog: product %q not found", productID))
}

// NewEmptyCatalog 创建“可推荐产品不足”错误（目录中可参与相似度计算的产品少于 2 个）。
func NewEmptyCatalog(eligible int) *DomainError {
	return NewDomainError(ModuleCatalog, ErrorCodeEmptyCatalog,
		fmt.Sprintf("catalog: %d eligible products, nothing to recommend against", eligible))
}

// NewInvalidParameter 创建“参数无效”错误。
func NewInvalidParameter(message string) *DomainError {
	return NewDomainError(ModuleRecall, ErrorCodeInvalidParameter, message)
}

// IsNotFound 检查错误是否为 NOT_FOUND。
func IsNotFound(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotFound
	}
	return false
}

// IsEmptyCatalog 检查错误是否为 EMPTY_CATALOG。
func IsEmptyCatalog(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeEmptyCatalog
	}
	return false
}

// IsInvalidParameter 检查错误是否为 INVALID_PARAMETER。
func IsInvalidParameter(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeInvalidParameter
	}
	return false
}

// IsNotSupported 检查错误是否为 NOT_SUPPORTED。
func IsNotSupported(err error) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == ErrorCodeNotSupported
	}
	return false
}
