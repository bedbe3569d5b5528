package ports_test

import (
	"context"
	"encoding/json"
	"sort"
	"testing"

	"github.com/aretw0/fxforge/pkg/domain"
	"github.com/aretw0/fxforge/pkg/ports"
)

// MockStore is a map-backed ProjectStore that round-trips through JSON to
// simulate serialization.
type MockStore struct {
	data map[string][]byte
}

func NewMockStore() *MockStore {
	return &MockStore{data: make(map[string][]byte)}
}

func (m *MockStore) Save(ctx context.Context, project *domain.Project) error {
	raw, err := json.Marshal(project)
	if err != nil {
		return err
	}
	m.data[project.ID] = raw
	return nil
}

func (m *MockStore) Load(ctx context.Context, projectID string) (*domain.Project, error) {
	raw, ok := m.data[projectID]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	var p domain.Project
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (m *MockStore) Delete(ctx context.Context, projectID string) error {
	delete(m.data, projectID)
	return nil
}

func (m *MockStore) List(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(m.data))
	for id := range m.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func TestProjectStore_Contract(t *testing.T) {
	ports.RunProjectStoreContract(t, NewMockStore())
}
