// Package rest exposes the storefront and back-office over HTTP/JSON.
package rest

import (
	"context"

	"storefront-be/internal/cart"
	"storefront-be/internal/mail"
	"storefront-be/internal/metrics"
	"storefront-be/internal/money"
	"storefront-be/internal/order"
	"storefront-be/internal/product"
	"storefront-be/internal/storage"
	"storefront-be/internal/user"
)

// ObjectStore is the storage surface the upload endpoints need.
type ObjectStore interface {
	Upload(ctx context.Context, file *storage.File, bucket, folder string) (string, error)
	UploadMany(ctx context.Context, files []*storage.File, bucket, folder string) ([]string, error)
	Delete(ctx context.Context, url, bucket string) bool
}

type Mailer interface {
	SendTest(ctx context.Context, recipient string) mail.Result
}

// Settings is the store configuration shown to admins.
type Settings struct {
	StoreName    string `json:"storeName"`
	Currency     string `json:"currency"`
	Locale       string `json:"locale"`
	Bucket       string `json:"bucket"`
	Environment  string `json:"environment"`
	MailEnabled  bool   `json:"mailEnabled"`
	TokenTTL     string `json:"tokenTtl"`
	CookieSecure bool   `json:"-"`
}

type Handler struct {
	Products product.Service
	Orders   order.Service
	Cart     cart.Service
	Users    user.Service
	Storage  ObjectStore
	Mail     Mailer
	Metrics  *metrics.Registry
	Money    *money.Formatter
	Settings Settings
}
