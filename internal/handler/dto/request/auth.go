package request

type LoginInfoRequest struct {
	ExpectedRole string `json:"expectedRole"`
}
