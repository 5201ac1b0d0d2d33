package packets

type SubscribeRequest struct {
	Email string  `json:"email" binding:"required"`
	Name  *string `json:"name"`
}

type VerifyRequest struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

type ResubscribeRequest struct {
	Email string `json:"email" binding:"required"`
}
