// Package actionmsg diffs freshly planned orders against the existing
// FIRM/RELEASED order book and produces reconciliation messages.
package actionmsg

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/mrp-planner/pkg/domain/entities"
)

const matchWindow = 3 * 24 * time.Hour

// MessageKind enumerates the five reconciliation outcomes.
type MessageKind string

const (
	KindNew      MessageKind = "NEW"
	KindIncrease MessageKind = "INCREASE"
	KindReduce   MessageKind = "REDUCE"
	KindExpedite MessageKind = "EXPEDITE"
	KindCancel   MessageKind = "CANCEL"
)

// Message is one action message, targeting either a planned order
// (NEW/INCREASE/REDUCE/EXPEDITE) or an existing order (CANCEL).
type Message struct {
	Kind          MessageKind
	PlannedOrder  *entities.PlannedOrder
	ExistingOrder *entities.PlannedOrder
	DeltaQty      decimal.Decimal
	DeltaDays     int
	Text          string
}

// Service computes and persists action messages.
type Service struct {
	Orders interface {
		SetActionMessage(ctx context.Context, orderID string, message string) error
	}
}

// NewService wires the action-messages stage.
func NewService(orders interface {
	SetActionMessage(ctx context.Context, orderID string, message string) error
}) *Service {
	return &Service{Orders: orders}
}

type key struct {
	product string
	kind    entities.OrderKind
}

// Diff groups planned and existing (FIRM/RELEASED only) orders by
// (product, kind) and emits one message per reconciliation outcome.
func Diff(planned, existing []entities.PlannedOrder) []Message {
	var filteredExisting []entities.PlannedOrder
	for _, e := range existing {
		if e.Status == entities.StatusFirm || e.Status == entities.StatusReleased {
			filteredExisting = append(filteredExisting, e)
		}
	}

	plannedByKey := map[key][]entities.PlannedOrder{}
	for _, p := range planned {
		k := key{p.ProductCode, p.Kind}
		plannedByKey[k] = append(plannedByKey[k], p)
	}
	existingByKey := map[key][]entities.PlannedOrder{}
	for _, e := range filteredExisting {
		k := key{e.ProductCode, e.Kind}
		existingByKey[k] = append(existingByKey[k], e)
	}

	keySet := map[key]bool{}
	for k := range plannedByKey {
		keySet[k] = true
	}
	for k := range existingByKey {
		keySet[k] = true
	}
	var keys []key
	for k := range keySet {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].product != keys[j].product {
			return keys[i].product < keys[j].product
		}
		return keys[i].kind < keys[j].kind
	})

	var messages []Message
	for _, k := range keys {
		pList := append([]entities.PlannedOrder(nil), plannedByKey[k]...)
		eList := append([]entities.PlannedOrder(nil), existingByKey[k]...)
		sort.Slice(pList, func(i, j int) bool { return pList[i].NeededBy.Before(pList[j].NeededBy) })
		sort.Slice(eList, func(i, j int) bool { return eList[i].ExpectedReceipt.Before(eList[j].ExpectedReceipt) })

		matched := make([]bool, len(eList))

		for i := range pList {
			po := pList[i]
			var candidateIdx []int
			for ei, eo := range eList {
				if absDuration(eo.ExpectedReceipt.Sub(po.NeededBy)) <= matchWindow {
					candidateIdx = append(candidateIdx, ei)
				}
			}

			if len(candidateIdx) == 0 {
				messages = append(messages, Message{
					Kind: KindNew, PlannedOrder: &pList[i],
					Text: fmt.Sprintf("NEW: %s %s qty %s needed %s", po.Kind, po.ProductCode, po.Quantity.String(), dateStr(po.NeededBy)),
				})
				continue
			}

			existingQty := decimal.Zero
			var existingDelivery time.Time
			for _, ei := range candidateIdx {
				matched[ei] = true
				existingQty = existingQty.Add(eList[ei].Quantity)
				if eList[ei].ExpectedReceipt.After(existingDelivery) {
					existingDelivery = eList[ei].ExpectedReceipt
				}
			}

			switch {
			case existingDelivery.After(po.NeededBy):
				deltaDays := int(math.Ceil(existingDelivery.Sub(po.NeededBy).Hours() / 24))
				messages = append(messages, Message{
					Kind: KindExpedite, PlannedOrder: &pList[i], DeltaDays: deltaDays,
					Text: fmt.Sprintf("EXPEDITE: %s %s by %d day(s), need %s existing %s", po.Kind, po.ProductCode, deltaDays, dateStr(po.NeededBy), dateStr(existingDelivery)),
				})
			case existingQty.LessThan(po.Quantity):
				delta := po.Quantity.Sub(existingQty)
				messages = append(messages, Message{
					Kind: KindIncrease, PlannedOrder: &pList[i], DeltaQty: delta,
					Text: fmt.Sprintf("INCREASE: %s %s by %s, needed %s", po.Kind, po.ProductCode, delta.String(), dateStr(po.NeededBy)),
				})
			case existingQty.GreaterThan(po.Quantity):
				delta := existingQty.Sub(po.Quantity)
				messages = append(messages, Message{
					Kind: KindReduce, PlannedOrder: &pList[i], DeltaQty: delta,
					Text: fmt.Sprintf("REDUCE: %s %s by %s, needed %s", po.Kind, po.ProductCode, delta.String(), dateStr(po.NeededBy)),
				})
			}
		}

		for ei, eo := range eList {
			if matched[ei] {
				continue
			}
			messages = append(messages, Message{
				Kind: KindCancel, ExistingOrder: &eList[ei],
				Text: fmt.Sprintf("CANCEL: %s %s qty %s expected %s no longer required", eo.Kind, eo.ProductCode, eo.Quantity.String(), dateStr(eo.ExpectedReceipt)),
			})
		}
	}

	return messages
}

// Persist mutates ActionMessage on the affected order (planned or existing).
func (s *Service) Persist(ctx context.Context, messages []Message) error {
	for _, m := range messages {
		switch m.Kind {
		case KindNew, KindIncrease, KindReduce, KindExpedite:
			if m.PlannedOrder == nil {
				continue
			}
			if err := s.Orders.SetActionMessage(ctx, m.PlannedOrder.ID, m.Text); err != nil {
				return fmt.Errorf("actionmsg: set message on planned order %s: %w", m.PlannedOrder.ID, err)
			}
		case KindCancel:
			if m.ExistingOrder == nil {
				continue
			}
			if err := s.Orders.SetActionMessage(ctx, m.ExistingOrder.ID, m.Text); err != nil {
				return fmt.Errorf("actionmsg: set message on existing order %s: %w", m.ExistingOrder.ID, err)
			}
		}
	}
	return nil
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

func dateStr(t time.Time) string {
	return t.Format("2006-01-02")
}
