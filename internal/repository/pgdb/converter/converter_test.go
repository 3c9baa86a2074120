package converter

import (
	"testing"
	"time"

	"github.com/profibuy/storefront/internal/domain"
)

func TestEventConverter(t *testing.T) {
	var conv EventConverter
	ev := domain.NewEvent("6f1c", domain.EventSupplierJobFinished, "sup-1", map[string]any{"state": "completed", "polls": 4}, time.Now())

	model, err := conv.ToModel(ev)
	if err != nil {
		t.Fatalf("ToModel: %v", err)
	}
	if model.Status != "pending" || model.EventType != "supplier_job_finished" {
		t.Fatalf("unexpected model %+v", model)
	}

	back, err := conv.ToEntity(model)
	if err != nil {
		t.Fatalf("ToEntity: %v", err)
	}
	if back.Payload["state"] != "completed" || back.Payload["polls"] != float64(4) {
		t.Fatalf("payload lost: %v", back.Payload)
	}
}

func TestEventConverterNilPayload(t *testing.T) {
	var conv EventConverter
	model, err := conv.ToModel(&domain.Event{EventID: "x"})
	if err != nil {
		t.Fatal(err)
	}
	if string(model.Payload) != "{}" {
		t.Fatalf("nil payload must be stored as {}, got %s", model.Payload)
	}
}
