// Package paimock is an in-memory fake of the platform API, for offline development and tests.
package paimock

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/opst/paikit/pkg/api/types/datasets"
	apilineage "github.com/opst/paikit/pkg/api/types/lineage"
	"github.com/opst/paikit/pkg/api/types/tensorboards"
)

// Store holds the state of the fake platform.
//
// TensorBoard instances are created in Creating status,
// and get Running when they are observed once.
type Store struct {
	mu sync.Mutex

	seq          int
	datasets     map[string]datasets.Dataset
	lineages     []apilineage.RegisterRequest
	tensorboards map[string]*tensorboards.TensorBoard

	// tensorboard ids in creation order
	order []string

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		datasets:     map[string]datasets.Dataset{},
		tensorboards: map[string]*tensorboards.TensorBoard{},
		now:          time.Now,
	}
}

func (s *Store) nextId(prefix string) string {
	s.seq += 1
	return fmt.Sprintf("%s-%06d", prefix, s.seq)
}

// RequestId issues a new request id.
func (s *Store) RequestId() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextId("req")
}

// PutDataset adds or replaces a dataset.
func (s *Store) PutDataset(ds datasets.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.datasets[ds.DatasetId] = ds
}

func (s *Store) Dataset(id string) (datasets.Dataset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ds, ok := s.datasets[id]
	return ds, ok
}

func (s *Store) AddLineage(req apilineage.RegisterRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lineages = append(s.lineages, req)
}

// Lineages returns lineages registered so far, in order.
func (s *Store) Lineages() []apilineage.RegisterRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.lineages)
}

func (s *Store) CreateTensorBoard(req tensorboards.CreateRequest) tensorboards.TensorBoard {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextId("tb")
	tb := &tensorboards.TensorBoard{
		TensorboardId:         id,
		DisplayName:           req.DisplayName,
		Status:                tensorboards.Creating,
		SourceType:            req.SourceType,
		SourceId:              req.SourceId,
		Uri:                   req.Uri,
		SummaryRelativePath:   req.SummaryRelativePath,
		DataSourceType:        req.DataSourceType,
		DataSourceId:          req.DataSourceId,
		MaxRunningTimeMinutes: req.MaxRunningTimeMinutes,
		WorkspaceId:           req.WorkspaceId,
		GmtCreateTime:         s.now().UTC().Format(time.RFC3339),
	}
	s.tensorboards[id] = tb
	s.order = append(s.order, id)
	return *tb
}

func urlOf(id string) string {
	return "/tensorboards/" + id + "/"
}

// TensorBoard returns the instance. Creating instance gets Running after this.
func (s *Store) TensorBoard(id string) (tensorboards.TensorBoard, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tb, ok := s.tensorboards[id]
	if !ok {
		return tensorboards.TensorBoard{}, false
	}
	ret := *tb
	if tb.Status == tensorboards.Creating {
		tb.Status = tensorboards.Running
		tb.TensorboardUrl = urlOf(id)
	}
	return ret, true
}

// ListTensorBoards returns a page of instances matching sourceType and sourceId, and the total count of them.
//
// Empty sourceType or sourceId matches all. page is 1-origin.
func (s *Store) ListTensorBoards(sourceType, sourceId string, page, size int) ([]tensorboards.TensorBoard, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := []tensorboards.TensorBoard{}
	for _, id := range s.order {
		tb := s.tensorboards[id]
		if sourceType != "" && tb.SourceType != sourceType {
			continue
		}
		if sourceId != "" && tb.SourceId != sourceId {
			continue
		}
		matched = append(matched, *tb)
	}

	from := min((page-1)*size, len(matched))
	to := min(from+size, len(matched))
	return matched[from:to], len(matched)
}

// Transit changes status of the instance when it is in one of from.
//
// # Returns
//
// - TensorBoard: the instance after transition
//
// - bool: false if not found.
//
// - error: ErrStatus when the instance is not in from.
func (s *Store) Transit(id string, to tensorboards.Status, from ...tensorboards.Status) (tensorboards.TensorBoard, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tb, ok := s.tensorboards[id]
	if !ok {
		return tensorboards.TensorBoard{}, false, nil
	}
	if tb.Status == to {
		return *tb, true, nil
	}
	if !slices.Contains(from, tb.Status) {
		return *tb, true, fmt.Errorf("%w: %s is %s", ErrStatus, id, tb.Status)
	}
	tb.Status = to
	if to == tensorboards.Running {
		tb.TensorboardUrl = urlOf(id)
	} else {
		tb.TensorboardUrl = ""
	}
	return *tb, true, nil
}

// DeleteTensorBoard removes the instance. It returns false if not found.
func (s *Store) DeleteTensorBoard(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tensorboards[id]; !ok {
		return false
	}
	delete(s.tensorboards, id)
	s.order = slices.DeleteFunc(s.order, func(i string) bool { return i == id })
	return true
}
