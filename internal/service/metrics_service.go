package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/fortresslabs/garrison/internal/entity"
	"github.com/fortresslabs/garrison/internal/repository"
)

// Metrics is the reconstructed balance picture for one reporting window.
type Metrics struct {
	OpeningBalance int64 `json:"opening_balance"`
	Purchases      int64 `json:"purchases"`
	TransfersIn    int64 `json:"transfers_in"`
	TransfersOut   int64 `json:"transfers_out"`
	Assigned       int64 `json:"assigned"`
	Expended       int64 `json:"expended"`
	NetMovement    int64 `json:"net_movement"`
	ClosingBalance int64 `json:"closing_balance"`
}

// MetricsQuery carries the raw form fields of a metrics request.
type MetricsQuery struct {
	From      string
	To        string
	Equipment string
	BaseID    string
}

// MetricsService reconstructs opening/closing balances from the transaction
// history alone. It never reads the ledger projection: metrics must stay
// correct even if the ledger were discarded and rebuilt. Responses may be
// cached in Redis since reads tolerate staleness against in-flight writes.
type MetricsService struct {
	repos  *repository.Repositories
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewMetricsService(repos *repository.Repositories, rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *MetricsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MetricsService{repos: repos, rdb: rdb, ttl: ttl, logger: logger}
}

// Compute reconstructs the balance picture for the caller's scope.
//
//	openingBalance = purchases + transfersIn - transfersOut - assigned - expended, all before fromDate
//	netMovement    = purchases + transfersIn - transfersOut within [fromDate, toDate]
//	closingBalance = openingBalance + netMovement - assigned - expended within the window
func (s *MetricsService) Compute(ctx context.Context, p entity.Principal, q MetricsQuery) (*Metrics, error) {
	baseID := MetricsScope(p, q.BaseID)

	from, err := parseOptionalDate(q.From)
	if err != nil {
		return nil, err
	}
	to, err := parseOptionalDate(q.To)
	if err != nil {
		return nil, err
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, Errorf(KindValidation, "toDate precedes fromDate")
	}

	equipmentID := ""
	if q.Equipment != "" {
		equipment, err := s.repos.Equipment.FindByName(ctx, q.Equipment)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				// No movements can reference an unknown name.
				return &Metrics{}, nil
			}
			return nil, err
		}
		equipmentID = equipment.ID
	}

	cacheKey := s.cacheKey(baseID, equipmentID, from, to)
	if cached := s.fromCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	metrics, err := s.reconstruct(ctx, baseID, equipmentID, from, to)
	if err != nil {
		return nil, err
	}

	s.toCache(ctx, cacheKey, metrics)
	return metrics, nil
}

func (s *MetricsService) reconstruct(ctx context.Context, baseID, equipmentID string, from, to *time.Time) (*Metrics, error) {
	m := &Metrics{}

	// Opening balance: every movement strictly before the window.
	if from != nil {
		opening := repository.SumFilter{BaseID: baseID, EquipmentID: equipmentID, Before: from}

		prePurchases, err := s.repos.Purchase.Sum(ctx, opening)
		if err != nil {
			return nil, err
		}
		preIn, err := s.repos.Transfer.SumIn(ctx, opening)
		if err != nil {
			return nil, err
		}
		preOut, err := s.repos.Transfer.SumOut(ctx, opening)
		if err != nil {
			return nil, err
		}
		preAssigned, err := s.repos.Assignment.Sum(ctx, withType(opening, entity.AssignmentAssigned))
		if err != nil {
			return nil, err
		}
		preExpended, err := s.repos.Assignment.Sum(ctx, withType(opening, entity.AssignmentExpended))
		if err != nil {
			return nil, err
		}
		m.OpeningBalance = prePurchases + preIn - preOut - preAssigned - preExpended
	}

	window := repository.SumFilter{BaseID: baseID, EquipmentID: equipmentID, From: from, To: to}

	var err error
	if m.Purchases, err = s.repos.Purchase.Sum(ctx, window); err != nil {
		return nil, err
	}
	if m.TransfersIn, err = s.repos.Transfer.SumIn(ctx, window); err != nil {
		return nil, err
	}
	if m.TransfersOut, err = s.repos.Transfer.SumOut(ctx, window); err != nil {
		return nil, err
	}
	if m.Assigned, err = s.repos.Assignment.Sum(ctx, withType(window, entity.AssignmentAssigned)); err != nil {
		return nil, err
	}
	if m.Expended, err = s.repos.Assignment.Sum(ctx, withType(window, entity.AssignmentExpended)); err != nil {
		return nil, err
	}

	m.NetMovement = m.Purchases + m.TransfersIn - m.TransfersOut
	m.ClosingBalance = m.OpeningBalance + m.NetMovement - m.Assigned - m.Expended
	return m, nil
}

func withType(f repository.SumFilter, assignmentType string) repository.SumFilter {
	f.Type = assignmentType
	return f
}

func (s *MetricsService) cacheKey(baseID, equipmentID string, from, to *time.Time) string {
	fromStr, toStr := "", ""
	if from != nil {
		fromStr = from.Format(time.RFC3339)
	}
	if to != nil {
		toStr = to.Format(time.RFC3339)
	}
	return fmt.Sprintf("metrics:%s:%s:%s:%s", baseID, equipmentID, fromStr, toStr)
}

func (s *MetricsService) fromCache(ctx context.Context, key string) *Metrics {
	if s.rdb == nil {
		return nil
	}
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("metrics cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil
	}
	var m Metrics
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return &m
}

func (s *MetricsService) toCache(ctx context.Context, key string, m *Metrics) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		s.logger.Warn("metrics cache write failed", zap.String("key", key), zap.Error(err))
	}
}
