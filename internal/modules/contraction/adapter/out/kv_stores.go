package out

import (
	"context"
	"encoding/json"
	"fmt"

	hclog "github.com/hashicorp/go-hclog"

	"labortimer/internal/modules/contraction/domain"
	contractionout "labortimer/internal/modules/contraction/port/out"
	apperrors "labortimer/internal/platform/errors"
	"labortimer/internal/platform/kvstore"
)

const (
	HistoryKey = "contractions"
	SetsKey    = "contractionSets"
	ActiveKey  = "activeContraction"
)

type KVHistoryStore struct {
	kv     kvstore.Store
	logger hclog.Logger
}

func NewKVHistoryStore(kv kvstore.Store, logger hclog.Logger) contractionout.HistoryStore {
	return &KVHistoryStore{kv: kv, logger: logger.Named("history")}
}

// Load treats a missing or unreadable record as an empty history.
func (s *KVHistoryStore) Load(ctx context.Context) []domain.Contraction {
	raw, ok, err := s.kv.Get(ctx, HistoryKey)
	if err != nil {
		s.logger.Error("error loading contractions", "error", err)
		return []domain.Contraction{}
	}
	if !ok {
		return []domain.Contraction{}
	}
	var list []domain.Contraction
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		s.logger.Error("error decoding contractions", "error", err)
		return []domain.Contraction{}
	}
	if list == nil {
		list = []domain.Contraction{}
	}
	return list
}

func (s *KVHistoryStore) Save(ctx context.Context, contractions []domain.Contraction) {
	if contractions == nil {
		contractions = []domain.Contraction{}
	}
	payload, err := json.Marshal(contractions)
	if err != nil {
		s.logger.Error("error encoding contractions", "error", err)
		return
	}
	if err := s.kv.Set(ctx, HistoryKey, string(payload)); err != nil {
		s.logger.Error("error saving contractions", "error", err)
	}
}

func (s *KVHistoryStore) Clear(ctx context.Context) {
	if err := s.kv.Remove(ctx, HistoryKey); err != nil {
		s.logger.Error("error clearing contractions", "error", err)
	}
}

type KVSetStore struct {
	kv kvstore.Store
}

func NewKVSetStore(kv kvstore.Store) contractionout.SetStore {
	return &KVSetStore{kv: kv}
}

func (s *KVSetStore) Load(ctx context.Context) ([]domain.ContractionSet, error) {
	raw, ok, err := s.kv.Get(ctx, SetsKey)
	if err != nil {
		return nil, fmt.Errorf("%w: load saved sets: %v", apperrors.ErrSetStorage, err)
	}
	if !ok {
		return []domain.ContractionSet{}, nil
	}
	var sets []domain.ContractionSet
	if err := json.Unmarshal([]byte(raw), &sets); err != nil {
		return nil, fmt.Errorf("%w: decode saved sets: %v", apperrors.ErrSetStorage, err)
	}
	if sets == nil {
		sets = []domain.ContractionSet{}
	}
	return sets, nil
}

func (s *KVSetStore) Save(ctx context.Context, sets []domain.ContractionSet) error {
	if sets == nil {
		sets = []domain.ContractionSet{}
	}
	payload, err := json.Marshal(sets)
	if err != nil {
		return fmt.Errorf("%w: encode saved sets: %v", apperrors.ErrSetStorage, err)
	}
	if err := s.kv.Set(ctx, SetsKey, string(payload)); err != nil {
		return fmt.Errorf("%w: save saved sets: %v", apperrors.ErrSetStorage, err)
	}
	return nil
}

type KVActiveStore struct {
	kv     kvstore.Store
	logger hclog.Logger
}

func NewKVActiveStore(kv kvstore.Store, logger hclog.Logger) contractionout.ActiveStore {
	return &KVActiveStore{kv: kv, logger: logger.Named("active")}
}

func (s *KVActiveStore) Load(ctx context.Context) *domain.Contraction {
	raw, ok, err := s.kv.Get(ctx, ActiveKey)
	if err != nil {
		s.logger.Error("error loading active contraction", "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	active := domain.Contraction{}
	if err := json.Unmarshal([]byte(raw), &active); err != nil {
		s.logger.Error("error decoding active contraction", "error", err)
		return nil
	}
	if active.ID == "" || active.Completed() {
		return nil
	}
	return &active
}

func (s *KVActiveStore) Save(ctx context.Context, active *domain.Contraction) {
	if active == nil {
		if err := s.kv.Remove(ctx, ActiveKey); err != nil {
			s.logger.Error("error clearing active contraction", "error", err)
		}
		return
	}
	payload, err := json.Marshal(active)
	if err != nil {
		s.logger.Error("error encoding active contraction", "error", err)
		return
	}
	if err := s.kv.Set(ctx, ActiveKey, string(payload)); err != nil {
		s.logger.Error("error saving active contraction", "error", err)
	}
}
