package response

// AppError 接口层错误：业务码、i18n 键、本地化后的消息与原始错误
type AppError struct {
	Code    int
	Key     string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Internal 是否为服务端错误（需要告警级别日志）
func (e *AppError) Internal() bool {
	return e.Code >= CodeInternal
}

// LogFields 结构化日志字段
func (e *AppError) LogFields() []interface{} {
	fields := []interface{}{"code", e.Code, "key", e.Key, "message", e.Message}
	if e.Err != nil {
		fields = append(fields, "error", e.Err)
	}
	return fields
}

// WrapError 包装错误
func WrapError(code int, key, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Key:     key,
		Message: message,
		Err:     err,
	}
}
