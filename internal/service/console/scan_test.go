package console

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jhpcic/internal/service/order/domain"
)

type fakeExtractor struct {
	person  *domain.Person
	vehicle *domain.Vehicle
	err     error
	block   chan struct{}
	entered chan struct{}
}

func (f *fakeExtractor) wait() {
	if f.entered != nil {
		close(f.entered)
	}
	if f.block != nil {
		<-f.block
	}
}

func (f *fakeExtractor) ExtractPerson(context.Context, string) (*domain.Person, error) {
	f.wait()
	if f.err != nil {
		return nil, f.err
	}
	return f.person, nil
}

func (f *fakeExtractor) ExtractVehicle(context.Context, string) (*domain.Vehicle, error) {
	f.wait()
	if f.err != nil {
		return nil, f.err
	}
	return f.vehicle, nil
}

func TestScanMergesIntoActiveTab(t *testing.T) {
	c := New()
	require.NoError(t, c.SelectTab(TabInsured))
	ex := &fakeExtractor{person: &domain.Person{Name: "李四", IDCard: "310101199202021234"}}

	require.NoError(t, c.Scan(context.Background(), ex, "data:image/png;base64,AA=="))
	assert.Equal(t, "李四", c.Data.Insured.Name)
	assert.Equal(t, "310101199202021234", c.Data.Insured.IDCard)
	// 未识别的字段保持原值
	assert.Equal(t, "13800138000", c.Data.Insured.Mobile)
	assert.Equal(t, "张三", c.Data.Proposer.Name)
	assert.False(t, c.Scanning())
}

func TestScanVehicle(t *testing.T) {
	c := New()
	require.NoError(t, c.SelectTab(TabVehicle))
	ex := &fakeExtractor{vehicle: &domain.Vehicle{Plate: "沪B12345"}}
	require.NoError(t, c.Scan(context.Background(), ex, "AA=="))
	assert.Equal(t, "沪B12345", c.Data.Vehicle.Plate)
	assert.Equal(t, "特斯拉 Model 3", c.Data.Vehicle.Brand)
}

func TestScanFailureLeavesDataUntouched(t *testing.T) {
	c := New()
	before := c.Data.Clone()
	ex := &fakeExtractor{err: errors.Wrap(domain.ErrNetwork, "timeout")}

	err := c.Scan(context.Background(), ex, "AA==")
	require.Error(t, err)
	assert.Contains(t, err.Error(), MsgScanFailed)
	assert.True(t, errors.Is(err, domain.ErrNetwork))
	assert.Equal(t, before, c.Data)

	require.NoError(t, c.SelectTab(TabProject))
	assert.True(t, errors.Is(c.Scan(context.Background(), ex, "AA=="), domain.ErrValidation))
}

func TestScanRejectsConcurrentScan(t *testing.T) {
	c := New()
	ex := &fakeExtractor{
		person:  &domain.Person{Name: "王五"},
		block:   make(chan struct{}),
		entered: make(chan struct{}),
	}
	done := make(chan error, 1)
	go func() { done <- c.Scan(context.Background(), ex, "AA==") }()

	<-ex.entered
	assert.True(t, c.Scanning())
	assert.True(t, errors.Is(c.Scan(context.Background(), &fakeExtractor{}, "AA=="), ErrScanInProgress))

	close(ex.block)
	require.NoError(t, <-done)
	assert.Equal(t, "王五", c.Data.Proposer.Name)
}
