package sheets

import (
	"context"
	"time"

	"github.com/biggernumbers/biggernumbers/internal/spending"
)

var (
	_ SnapshotExporter = (*Exporter)(nil)
	_ SnapshotExporter = (*MockExporter)(nil)
)

// MockExporter is a test double for SnapshotExporter.
type MockExporter struct {
	ExportFn    func(ctx context.Context, snap spending.Snapshot, at time.Time) error
	ExportCalls []spending.Snapshot
}

// Export implements SnapshotExporter.
func (m *MockExporter) Export(ctx context.Context, snap spending.Snapshot, at time.Time) error {
	m.ExportCalls = append(m.ExportCalls, snap)
	if m.ExportFn != nil {
		return m.ExportFn(ctx, snap, at)
	}
	return nil
}
