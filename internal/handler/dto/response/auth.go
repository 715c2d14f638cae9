package response

import "servicebook/internal/usecase"

type LoginInfoResponse struct {
	OK      bool           `json:"ok"`
	UID     string         `json:"uid"`
	Role    string         `json:"role"`
	Profile map[string]any `json:"profile"`
}

func FromLoginInfo(info *usecase.LoginInfo) *LoginInfoResponse {
	return &LoginInfoResponse{
		OK:      true,
		UID:     info.UID,
		Role:    info.Role.String(),
		Profile: info.Profile,
	}
}
