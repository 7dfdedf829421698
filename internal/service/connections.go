package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"connplanner/internal/models"
	"connplanner/internal/repository"
)

// ConnectionService owns the connection registry invariants: unique name,
// single default, write-once secret, masked reads.
type ConnectionService struct {
	Repo     repository.Repository
	Logger   *zap.Logger
	Activity *ActivityService
}

func (s *ConnectionService) FindAll(ctx context.Context, search string, page, size int) (PagedResult[models.Connection], error) {
	page, size = normalizePage(page, size)
	params := repository.ListConnectionsParams{
		Search: strings.TrimSpace(search),
		Limit:  size,
		Offset: page * size,
	}
	items, err := s.Repo.ListConnections(ctx, params)
	if err != nil {
		return PagedResult[models.Connection]{}, err
	}
	total, err := s.Repo.CountConnections(ctx, params)
	if err != nil {
		return PagedResult[models.Connection]{}, err
	}
	masked := make([]models.Connection, 0, len(items))
	for i := range items {
		masked = append(masked, *maskConnection(&items[i]))
	}
	return newPagedResult(masked, page, size, total), nil
}

func (s *ConnectionService) FindByID(ctx context.Context, id uint64) (*models.Connection, error) {
	item, err := s.Repo.GetConnectionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, notFound("connection", id)
	}
	return maskConnection(item), nil
}

func (s *ConnectionService) Create(ctx context.Context, in ConnectionInput) (*models.Connection, error) {
	in.normalize()

	existing, err := s.Repo.FindConnectionByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &DuplicateNameError{Entity: "connection", Name: in.Name}
	}

	item := &models.Connection{
		Name:          in.Name,
		BaseURL:       in.BaseURL,
		AuthMethod:    in.AuthMethod,
		AuthPlace:     in.AuthPlace,
		KeyField:      in.KeyField,
		ValueField:    in.ValueField,
		ValueFieldSet: in.ValueField != nil,
		IsDefault:     in.IsDefault,
	}

	err = s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		if in.IsDefault {
			if err := s.Repo.ClearDefaultConnectionTx(ctx, tx, 0); err != nil {
				return err
			}
		}
		return s.Repo.CreateConnectionTx(ctx, tx, item)
	})
	if err != nil {
		return nil, translateDuplicate(err, "connection", in.Name)
	}

	if s.Logger != nil {
		s.Logger.Info("connection created", zap.Uint64("id", item.ID), zap.String("name", item.Name))
	}
	s.Activity.Record(ctx, "connection", item.ID, "create", map[string]any{"name": item.Name})
	return maskConnection(item), nil
}

func (s *ConnectionService) Update(ctx context.Context, id uint64, in ConnectionInput) (*models.Connection, error) {
	in.normalize()

	existing, err := s.Repo.GetConnectionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, notFound("connection", id)
	}

	if !strings.EqualFold(existing.Name, in.Name) {
		count, err := s.Repo.CountConnectionsByNameExcluding(ctx, in.Name, id)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, &DuplicateNameError{Entity: "connection", Name: in.Name}
		}
	}

	// The secret is write-once: anything other than the mask token is a
	// mutation attempt once the flag is up.
	if existing.ValueFieldSet && in.ValueField != nil && *in.ValueField != MaskToken {
		return nil, ErrImmutableField
	}

	wasDefault := existing.IsDefault

	existing.Name = in.Name
	existing.BaseURL = in.BaseURL
	existing.AuthMethod = in.AuthMethod
	existing.AuthPlace = in.AuthPlace
	existing.KeyField = in.KeyField
	existing.IsDefault = in.IsDefault
	if !existing.ValueFieldSet && in.ValueField != nil {
		existing.ValueField = in.ValueField
		existing.ValueFieldSet = true
	}
	if in.Version != nil {
		existing.Version = *in.Version
	}

	err = s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		if in.IsDefault && !wasDefault {
			if err := s.Repo.ClearDefaultConnectionTx(ctx, tx, id); err != nil {
				return err
			}
		}
		rows, err := s.Repo.UpdateConnectionTx(ctx, tx, existing)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrConflict
		}
		return nil
	})
	if err != nil {
		return nil, translateDuplicate(err, "connection", in.Name)
	}
	existing.Version++

	if s.Logger != nil {
		s.Logger.Info("connection updated", zap.Uint64("id", id), zap.String("name", existing.Name))
	}
	s.Activity.Record(ctx, "connection", id, "update", map[string]any{"name": existing.Name})
	return maskConnection(existing), nil
}

func (s *ConnectionService) Delete(ctx context.Context, id uint64) error {
	err := s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		rows, err := s.Repo.DeleteConnectionTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if rows == 0 {
			return notFound("connection", id)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if s.Logger != nil {
		s.Logger.Info("connection deleted", zap.Uint64("id", id))
	}
	s.Activity.Record(ctx, "connection", id, "delete", nil)
	return nil
}

// Copy clones everything except the secret and the default flag; secrets
// never propagate through copies.
func (s *ConnectionService) Copy(ctx context.Context, id uint64) (*models.Connection, error) {
	source, err := s.Repo.GetConnectionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, notFound("connection", id)
	}

	item := &models.Connection{
		Name:          source.Name + " (Copy)",
		BaseURL:       source.BaseURL,
		AuthMethod:    source.AuthMethod,
		AuthPlace:     source.AuthPlace,
		KeyField:      source.KeyField,
		ValueField:    nil,
		ValueFieldSet: false,
		IsDefault:     false,
	}
	err = s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		return s.Repo.CreateConnectionTx(ctx, tx, item)
	})
	if err != nil {
		return nil, translateDuplicate(err, "connection", item.Name)
	}

	if s.Logger != nil {
		s.Logger.Info("connection copied", zap.Uint64("source_id", id), zap.Uint64("copy_id", item.ID))
	}
	s.Activity.Record(ctx, "connection", item.ID, "copy", map[string]any{"source_id": id})
	return maskConnection(item), nil
}

func (in *ConnectionInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	if in.ValueField != nil && strings.TrimSpace(*in.ValueField) == "" {
		in.ValueField = nil
	}
}

// translateDuplicate maps the storage uniqueness backstop onto the same
// error the application-level pre-check produces.
func translateDuplicate(err error, entity, name string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &DuplicateNameError{Entity: entity, Name: name}
	}
	return err
}
