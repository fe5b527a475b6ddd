package controller

import (
	"context"

	zlog "github.com/rs/zerolog/log"

	"github.com/digietal/artgallery/internal/gallery"
)

// OrderSink receives completed orders. Orders are not kept anywhere else.
type OrderSink interface {
	Submit(ctx context.Context, o gallery.Order) error
}

// LogSink writes each order as a structured log event.
type LogSink struct{}

func (LogSink) Submit(ctx context.Context, o gallery.Order) error {
	zlog.Info().
		Str("customer_name", o.CustomerName).
		Str("customer_email", o.CustomerEmail).
		Str("shipping_address", o.ShippingAddress).
		Str("artwork_id", o.ArtworkID).
		Str("artwork_title", o.ArtworkTitle).
		Time("order_date", o.CreatedAt).
		Msg("order submitted")
	return nil
}
