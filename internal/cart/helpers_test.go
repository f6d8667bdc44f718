package cart

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/octocat-supply/storefront/internal/catalog"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

type recordingPersister struct {
	mu      sync.Mutex
	initial []LineItem
	saves   [][]LineItem
}

func (p *recordingPersister) Load(context.Context) []LineItem {
	return cloneItems(p.initial)
}

func (p *recordingPersister) Save(_ context.Context, items []LineItem) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.saves = append(p.saves, cloneItems(items))
}

func (p *recordingPersister) saveCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.saves)
}

func (p *recordingPersister) lastSave() []LineItem {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.saves) == 0 {
		return nil
	}
	return p.saves[len(p.saves)-1]
}

// brokenStore fails every read and write.
type brokenStore struct{}

var errBackendDown = errors.New("backend down")

func (brokenStore) Get(context.Context, string) ([]byte, error) {
	return nil, errBackendDown
}

func (brokenStore) Set(context.Context, string, []byte) error {
	return errBackendDown
}

func fraction(v float64) *float64 {
	return &v
}

func product(id int, price float64, discount *float64) catalog.Product {
	return catalog.Product{
		ProductID: id,
		Name:      "Product",
		Price:     price,
		SKU:       "SKU",
		Unit:      "piece",
		ImgName:   "product.png",
		Discount:  discount,
	}
}

func counterValue(t *testing.T, reg *prometheus.Registry, name, op string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			if labelValue(m, "op") == op {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}
