package tank

import (
	"fmt"

	"github.com/codeking/oilfox-hub/components/status"
)

// Reconciler applies mapped device records to a value sink.
//
// Remarks:
//   - Apply is fully idempotent: applying the same records twice yields
//     identical sink state.
//   - Values absent from a record are never pruned. The sink schema is
//     treated as additive-only, so a device switching to a schema generation
//     with fewer fields keeps its previously created values.
type Reconciler struct {
	sink        ValueSink
	parentScope string
}

// NewReconciler is a Reconciler initialization.
//
// Parameters:
//   - sink to persist groups and named values.
//   - parentScope - sink scope under which device groups are created.
func NewReconciler(sink ValueSink, parentScope string) *Reconciler {
	return &Reconciler{
		sink:        sink,
		parentScope: parentScope,
	}
}

// Apply reconciles records into the sink in record order.
//
// Remarks:
//   - A sink failure aborts the remainder of the walk; values already
//     reconciled in this call are left in place.
func (r *Reconciler) Apply(records []Record) error {
	for _, record := range records {
		group, err := r.sink.ResolveOrCreateGroup(r.parentScope, record.DeviceID, record.Label)
		if err != nil {
			return fmt.Errorf("tank-reconciler: failed to resolve group: device=%s err=%v: %w",
				record.DeviceID, err, status.StatusSinkError)
		}

		for ordinal, field := range record.Fields {
			if err := r.sink.ResolveOrCreateValue(group, field, ordinal); err != nil {
				return fmt.Errorf("tank-reconciler: failed to resolve value: device=%s field=%s err=%v: %w",
					record.DeviceID, field.Name, err, status.StatusSinkError)
			}
		}
	}

	return nil
}
