package constants

// 验证码存储后端常量
const (
	VerificationStoreDatabase = "database"
	VerificationStoreRedis    = "redis"
)

// 验证码默认参数
const (
	VerificationCodeLength        = 6
	VerificationCodeExpireMinutes = 5
)

// 验证码提供方常量
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// 验证码场景常量
const (
	CaptchaSceneSendCode   = "send_code"
	CaptchaSceneAdminLogin = "admin_login"
)

// 队列与任务常量
const (
	QueueDefault         = "default"
	QueueCritical        = "critical"
	TaskVoteReceiptEmail = "vote:receipt_email"
	TaskTallyReconcile   = "tally:reconcile"
)

// 管理员角色常量
const (
	RoleReturningOfficer = "returning_officer"
	RoleRegistrar        = "registrar"
	RoleAuditor          = "auditor"
)

// 上下文键常量
const (
	ContextKeyAdminID       = "admin_id"
	ContextKeyAdminUsername = "username"
	ContextKeyAdminIsSuper  = "admin_is_super"
	ContextKeyStudentID     = "student_id"
	ContextKeyStudentEmail  = "student_email"
)
