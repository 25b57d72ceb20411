package checkoutRepository

import (
	"github.com/alexleon2021/vocalcart/internal/entity"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		var err error
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Orders:   &ordersRepository{q: sqlExecutor, log: r.log},
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

type Client struct {
	Orders interface {
		CreateOrder(ctx context.Context, order entity.Order) error
		CreateOrderItem(ctx context.Context, item entity.OrderItem) error
		CreateShipment(ctx context.Context, shipment entity.Shipment) error
		DecrementStock(ctx context.Context, productID string, quantity int) error
		GetOrderByID(ctx context.Context, id string) (entity.Order, error)
		GetOrderItems(ctx context.Context, orderID string) ([]entity.OrderItem, error)
	}

	Commit   func() error
	Rollback func() error
}

type ordersRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
