// Package redis stores registrations as JSON values keyed by registration id,
// with a set of ids alongside so listing does not need a keyspace scan.
package redis

import (
	"context"
	"encoding/json"

	"github.com/eventica/registration-api/internal/domain/registration"
	"github.com/eventica/registration-api/internal/observability"
	goredis "github.com/redis/go-redis/v9"
)

const (
	recordKeyPrefix = "registration:"
	indexKey        = "registrations:index"
)

type RegistrationsRepo struct {
	rdb  *goredis.Client
	prom *observability.Prom
}

func NewRegistrationsRepo(rdb *goredis.Client, prom *observability.Prom) *RegistrationsRepo {
	return &RegistrationsRepo{
		rdb:  rdb,
		prom: prom,
	}
}

func (repo *RegistrationsRepo) observe(op string, fn func() error) error {
	if repo.prom != nil {
		return repo.prom.ObserveStore(op, fn)
	}

	return fn()
}

// Put writes the record and its index entry in one MULTI/EXEC pipeline, so a
// record is never visible without being listable or vice versa.
func (repo *RegistrationsRepo) Put(ctx context.Context, rec registration.Registration) error {
	raw, err := json.Marshal(rec)

	if err != nil {
		return err
	}

	return repo.observe("registrations.put", func() error {
		_, err := repo.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, recordKeyPrefix+rec.RegistrationID, raw, 0)
			pipe.SAdd(ctx, indexKey, rec.RegistrationID)
			return nil
		})

		return err
	})
}

func (repo *RegistrationsRepo) ScanAll(ctx context.Context) (regs []registration.Registration, err error) {
	var ids []string

	err = repo.observe("registrations.scan_all.index", func() error {
		var e error
		ids, e = repo.rdb.SMembers(ctx, indexKey).Result()
		return e
	})

	if err != nil {
		return nil, err
	}

	regs = make([]registration.Registration, 0, len(ids))

	if len(ids) == 0 {
		return regs, nil
	}

	keys := make([]string, len(ids))

	for i, id := range ids {
		keys[i] = recordKeyPrefix + id
	}

	var vals []any

	err = repo.observe("registrations.scan_all.mget", func() error {
		var e error
		vals, e = repo.rdb.MGet(ctx, keys...).Result()
		return e
	})

	if err != nil {
		return nil, err
	}

	for _, v := range vals {
		raw, ok := v.(string)

		if !ok {
			// index entry without a value: deleted between SMEMBERS and MGET
			continue
		}

		var rec registration.Registration

		if e := json.Unmarshal([]byte(raw), &rec); e != nil {
			return nil, e
		}

		regs = append(regs, rec)
	}

	return regs, nil
}

// DeleteByID removes the value and its index entry together. Absent ids are
// a no-op success: DEL and SREM do not care whether the key existed.
func (repo *RegistrationsRepo) DeleteByID(ctx context.Context, id string) error {
	return repo.observe("registrations.delete", func() error {
		_, err := repo.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Del(ctx, recordKeyPrefix+id)
			pipe.SRem(ctx, indexKey, id)
			return nil
		})

		return err
	})
}
