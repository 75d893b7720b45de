package i18n

var messages = map[string]map[string]string{
	LocaleEN: {
		"error.bad_request":                 "Invalid request",
		"error.unauthorized":                "Unauthorized",
		"error.forbidden":                   "Permission denied",
		"error.not_found":                   "Resource not found",
		"error.internal_error":              "Internal server error",
		"error.too_many_requests":           "Too many requests, please try again later",
		"error.rate_limited":                "Too many requests, please retry in %d seconds",
		"error.rate_limit_unavailable":      "Rate limiter is unavailable",
		"error.auth_header_missing":         "Authorization header is missing",
		"error.auth_header_invalid":         "Authorization header is malformed",
		"error.token_revoked":               "Token has been revoked",
		"error.token_invalid":               "Invalid token",
		"error.token_expired":               "Token expired",
		"error.login_invalid":               "Invalid username or password",
		"error.email_invalid":               "Invalid email address",
		"error.email_domain_not_allowed":    "Email domain is not allowed",
		"error.code_invalid":                "Invalid or expired code",
		"error.code_send_failed":            "Failed to send verification code",
		"error.captcha_required":            "Captcha is required",
		"error.captcha_invalid":             "Captcha is incorrect",
		"error.captcha_config_invalid":      "Captcha is not configured",
		"error.student_exists":              "Student already registered",
		"error.student_fields_required":     "Matric number, email and full name are required",
		"error.student_not_found":           "Student not found",
		"error.student_not_verified":        "Email has not been verified",
		"error.wallet_address_invalid":      "Invalid wallet address",
		"error.election_not_found":          "Election not found",
		"error.election_invalid":            "Election title and a valid time window are required",
		"error.positions_invalid":           "Positions must be non-empty and distinct",
		"error.candidate_not_found":         "Candidate not found",
		"error.candidacy_exists":            "Candidate already registered for this position",
		"error.position_unknown":            "Position is not part of this election",
		"error.candidate_election_mismatch": "Candidate does not belong to this election",
		"error.already_voted":               "You have already voted in this election",
		"error.vote_failed":                 "Failed to record vote",
		"error.register_failed":             "Registration failed",
		"error.student_fetch_failed":        "Failed to fetch students",
		"error.student_verify_failed":       "Failed to verify student",
		"error.election_fetch_failed":       "Failed to fetch elections",
		"error.election_create_failed":      "Failed to create election",
		"error.candidate_fetch_failed":      "Failed to fetch candidates",
		"error.candidate_create_failed":     "Failed to register candidate",
		"error.result_fetch_failed":         "Failed to compute results",
		"error.vote_fetch_failed":           "Failed to fetch votes",
		"error.reconcile_failed":            "Failed to reconcile tallies",
		"error.queue_unavailable":           "Task queue is unavailable",
		"error.captcha_generate_failed":     "Failed to generate captcha",
		"error.captcha_verify_failed":       "Failed to verify captcha",
		"error.login_failed":                "Login failed",
		"error.login_too_many":              "Too many login attempts, please retry in %d seconds",
		"error.code_too_frequent":           "Codes are requested too frequently, please retry in %d seconds",
		"error.admin_fetch_failed":          "Failed to fetch administrator",
		"error.authz_fetch_failed":          "Failed to fetch permissions",
		"error.role_unknown":                "Unknown committee role",
		"error.authz_update_failed":         "Failed to update permissions",
		"error.student_id_invalid":          "Invalid student id",
		"error.student_id_type_invalid":     "Invalid student id type",
		"error.admin_id_invalid":            "Invalid administrator id",
		"error.admin_id_type_invalid":       "Invalid administrator id type",
		"error.admin_create_failed":         "Failed to create administrator",
		"error.admin_exists":                "Administrator already exists",
		"error.username_invalid":            "Username must be 3 to 64 characters",
		"error.audit_fetch_failed":          "Failed to fetch audit logs",
		"error.password_min_length":         "Password must be at least %d characters",
		"error.password_require_upper":      "Password must contain an uppercase letter",
		"error.password_require_lower":      "Password must contain a lowercase letter",
		"error.password_require_number":     "Password must contain a digit",
		"error.password_require_special":    "Password must contain a special character",
		"verify.code_sent":                  "Verification code sent",
		"verify.code_verified":              "Email verified successfully",
		"vote.cast":                         "Vote cast successfully",
		"email.code_subject":                "Your Voting Verification Code",
		"email.code_body":                   "Your verification code is: %s\n\nThis code will expire in %d minutes.",
		"email.receipt_subject":             "Your vote has been recorded",
		"email.receipt_body":                "Hello %s,\n\nYour vote in \"%s\" was recorded at %s.\nReceipt: %s\n",
	},
	LocaleZH: {
		"error.bad_request":                 "请求参数错误",
		"error.unauthorized":                "未登录或登录已失效",
		"error.forbidden":                   "无权限访问",
		"error.not_found":                   "资源不存在",
		"error.internal_error":              "服务器内部错误",
		"error.too_many_requests":           "请求过于频繁，请稍后再试",
		"error.rate_limited":                "请求过于频繁，请在 %d 秒后重试",
		"error.rate_limit_unavailable":      "限流服务不可用",
		"error.auth_header_missing":         "缺少认证信息",
		"error.auth_header_invalid":         "认证信息格式错误",
		"error.token_revoked":               "令牌已失效",
		"error.token_invalid":               "无效的令牌",
		"error.token_expired":               "令牌已过期",
		"error.login_invalid":               "用户名或密码错误",
		"error.email_invalid":               "邮箱格式不正确",
		"error.email_domain_not_allowed":    "不支持该邮箱域名",
		"error.code_invalid":                "验证码无效或已过期",
		"error.code_send_failed":            "验证码发送失败",
		"error.captcha_required":            "请完成图形验证码",
		"error.captcha_invalid":             "图形验证码错误",
		"error.captcha_config_invalid":      "图形验证码未配置",
		"error.student_exists":              "该学生已注册",
		"error.student_fields_required":     "学号、邮箱和姓名为必填项",
		"error.student_not_found":           "学生不存在",
		"error.student_not_verified":        "邮箱尚未验证",
		"error.wallet_address_invalid":      "钱包地址无效",
		"error.election_not_found":          "选举不存在",
		"error.election_invalid":            "选举标题与起止时间不合法",
		"error.positions_invalid":           "职位列表不能为空且不能重复",
		"error.candidate_not_found":         "候选人不存在",
		"error.candidacy_exists":            "该候选人已登记此职位",
		"error.position_unknown":            "该职位不属于本次选举",
		"error.candidate_election_mismatch": "候选人不属于该选举",
		"error.already_voted":               "你已在本次选举中投票",
		"error.vote_failed":                 "投票失败",
		"error.register_failed":             "登记失败",
		"error.student_fetch_failed":        "获取学生失败",
		"error.student_verify_failed":       "验证学生失败",
		"error.election_fetch_failed":       "获取选举失败",
		"error.election_create_failed":      "创建选举失败",
		"error.candidate_fetch_failed":      "获取候选人失败",
		"error.candidate_create_failed":     "登记候选人失败",
		"error.result_fetch_failed":         "计票失败",
		"error.vote_fetch_failed":           "获取选票失败",
		"error.reconcile_failed":            "计票校正失败",
		"error.queue_unavailable":           "任务队列不可用",
		"error.captcha_generate_failed":     "生成图形验证码失败",
		"error.captcha_verify_failed":       "校验图形验证码失败",
		"error.login_failed":                "登录失败",
		"error.login_too_many":              "登录尝试过多，请在 %d 秒后重试",
		"error.code_too_frequent":           "验证码请求过于频繁，请在 %d 秒后重试",
		"error.admin_fetch_failed":          "获取管理员失败",
		"error.authz_fetch_failed":          "获取权限失败",
		"error.role_unknown":                "未知的委员会角色",
		"error.authz_update_failed":         "更新权限失败",
		"error.student_id_invalid":          "学生ID无效",
		"error.student_id_type_invalid":     "学生ID类型错误",
		"error.admin_id_invalid":            "管理员ID无效",
		"error.admin_id_type_invalid":       "管理员ID类型错误",
		"error.admin_create_failed":         "创建管理员失败",
		"error.admin_exists":                "管理员已存在",
		"error.username_invalid":            "用户名长度需为 3 到 64 个字符",
		"error.audit_fetch_failed":          "获取审计日志失败",
		"error.password_min_length":         "密码长度至少为 %d 位",
		"error.password_require_upper":      "密码需包含大写字母",
		"error.password_require_lower":      "密码需包含小写字母",
		"error.password_require_number":     "密码需包含数字",
		"error.password_require_special":    "密码需包含特殊字符",
		"verify.code_sent":                  "验证码已发送",
		"verify.code_verified":              "邮箱验证成功",
		"vote.cast":                         "投票成功",
		"email.code_subject":                "投票验证码",
		"email.code_body":                   "您的验证码是：%s\n\n验证码将在 %d 分钟后失效。",
		"email.receipt_subject":             "您的选票已记录",
		"email.receipt_body":                "%s 您好：\n\n您在「%s」中的选票已于 %s 记录。\n回执：%s\n",
	},
	LocaleTW: {
		"error.internal_error": "伺服器內部錯誤",
		"error.code_invalid":   "驗證碼無效或已過期",
		"error.already_voted":  "你已在本次選舉中投票",
		"verify.code_sent":     "驗證碼已發送",
		"vote.cast":            "投票成功",
	},
}
