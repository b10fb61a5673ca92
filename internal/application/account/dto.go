package account

// SignUpDTO 注册请求
type SignUpDTO struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// VerifyDTO 验证码校验请求
type VerifyDTO struct {
	Username string `json:"username" binding:"required"`
	Code     string `json:"code" binding:"required"`
}

// SignInDTO 登录请求，Identifier 可以是用户名或邮箱
type SignInDTO struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// AcceptMessagesDTO 更新消息接收开关
type AcceptMessagesDTO struct {
	AcceptMessages *bool `json:"acceptMessages" binding:"required"`
}

// TokenDTO 登录成功返回的访问令牌
type TokenDTO struct {
	Token     string   `json:"token"`
	ExpiresAt string   `json:"expiresAt"`
	User      *UserDTO `json:"user"`
}

// UserDTO 用户信息
type UserDTO struct {
	ID                  string `json:"id"`
	Username            string `json:"username"`
	Email               string `json:"email"`
	IsAcceptingMessages bool   `json:"isAcceptingMessages"`
}
