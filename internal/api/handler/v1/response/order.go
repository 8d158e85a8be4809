package response

import "github.com/hearthside/events-api/internal/domain"

type IssueTicketsResponse struct {
	Order   domain.Order    `json:"order"`
	Tickets []domain.Ticket `json:"tickets"`
}
