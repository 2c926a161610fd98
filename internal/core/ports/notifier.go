package ports

import (
	"context"
)

// StatusSignal is a status change pushed to the orchestration engine. Subject
// identifies the entity the status belongs to: an order id, a fulfillment id,
// or a typed subject built by ShipmentSubject or PaymentSubject.
type StatusSignal struct {
	Subject string
	Status  string
}

// ShipmentSubject builds the signal subject for a fulfillment's shipment.
// A shipment shares its identifier with the owning fulfillment, so shipment
// and payment signals carry a type prefix to keep the streams apart.
func ShipmentSubject(fulfillmentID string) string {
	return "shipment:" + fulfillmentID
}

// PaymentSubject builds the signal subject for a fulfillment's payment.
func PaymentSubject(fulfillmentID string) string {
	return "payment:" + fulfillmentID
}

// ShipmentNotifier pushes status transitions to interested collaborators,
// typically an external orchestration engine tracking the order lifecycle.
// Notification is best effort: implementations log and swallow delivery
// failures so a dead collaborator never blocks order processing.
type ShipmentNotifier interface {
	// NotifyStatus delivers a status signal. The context bounds the attempt.
	NotifyStatus(ctx context.Context, signal StatusSignal) error
}
