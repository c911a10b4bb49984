package services

import "errors"

// Kind 标识领域错误类别，供 HTTP 层映射状态码。
type Kind string

const (
	// KindNotFound 按 ID 查询的实体不存在
	KindNotFound Kind = "not_found"
	// KindValidation 缺失必填字段、非法输入或悬空外键引用
	KindValidation Kind = "validation"
	// KindConflict 因存在依赖记录而被拒绝的删除
	KindConflict Kind = "conflict"
)

// Error 是服务层统一的领域错误：携带类别与面向调用方的可读信息。
// 所有领域错误都在服务边界构造并原样向上传递，不视为进程级故障。
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func notFound(msg string) *Error   { return &Error{Kind: KindNotFound, Message: msg} }
func validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }
func conflict(msg string) *Error   { return &Error{Kind: KindConflict, Message: msg} }

// KindOf 提取领域错误类别；非领域错误返回 false（按基础设施错误处理）。
func KindOf(err error) (Kind, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return "", false
}
