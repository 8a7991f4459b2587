package response

import "github.com/trackside/scorekeeper-api/internal/domain"

type LoginResponse struct {
	Token    string          `json:"token"`
	Operator domain.Operator `json:"operator"`
}
