package services

import (
	"context"

	"pizzastore/models"
	"pizzastore/repository"
	"pizzastore/session"
)

// RecentOrdersLimit is how many orders the recent-orders view shows.
const RecentOrdersLimit = 5

// OrderHistory is a listing of order rows. Privileged listings cover every
// customer and carry the customer login as their second column.
type OrderHistory struct {
	Privileged bool
	Rows       [][]string
}

// OrderInfo is one order with its lines.
type OrderInfo struct {
	repository.OrderDetail
	ShowCustomer bool
	Lines        []models.ItemsInOrder
}

type HistoryService struct {
	repo *repository.Repository
}

func NewHistoryService(repo *repository.Repository) *HistoryService {
	return &HistoryService{repo: repo}
}

// Orders lists the caller's visible orders newest first. limit 0 lists all.
// Visibility follows the live role, not the one cached at log-in.
func (s *HistoryService) Orders(ctx context.Context, sess *session.Session, limit int) (OrderHistory, error) {
	role, err := sess.Authorize(ctx, s.repo)
	if err != nil {
		return OrderHistory{}, err
	}
	q := repository.OrderQuery{Limit: limit}
	if !role.Privileged() {
		q.Login = sess.Login()
	}
	rows, err := s.repo.Orders(ctx, q)
	if err != nil {
		return OrderHistory{}, err
	}
	return OrderHistory{Privileged: role.Privileged(), Rows: rows}, nil
}

// OrderInfo loads one order. Customers only see their own orders; anything
// else is reported as not found.
func (s *HistoryService) OrderInfo(ctx context.Context, sess *session.Session, orderID int) (OrderInfo, error) {
	role, err := sess.Authorize(ctx, s.repo)
	if err != nil {
		return OrderInfo{}, err
	}
	owner := ""
	if !role.Privileged() {
		owner = sess.Login()
	}
	detail, err := s.repo.Order(ctx, orderID, owner)
	if err != nil {
		return OrderInfo{}, err
	}
	lines, err := s.repo.OrderLines(ctx, orderID)
	if err != nil {
		return OrderInfo{}, err
	}
	return OrderInfo{OrderDetail: detail, ShowCustomer: role.Privileged(), Lines: lines}, nil
}
