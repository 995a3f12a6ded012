package actions

import (
	"context"
	"fmt"

	"pc1console/internal/model"
	"pc1console/internal/modkind"
)

// CreateModule создает модуль вида typeID с конфигурацией по умолчанию.
// Пустое имя замещается подписью вида. Модуль попадает в store только
// из ответа сервера: id назначает сервер.
func (a *Actions) CreateModule(ctx context.Context, typeID, name string) (*model.Module, error) {
	kind := modkind.Get(typeID)
	if name == "" {
		name = kind.Label
	}

	var created *model.Module
	err := a.run(ctx, mutation{
		name: "create_module",
		request: func(ctx context.Context) (func(), error) {
			module, err := a.api.CreateModule(ctx, typeID, name, kind.DefaultConfig())
			if err != nil {
				return nil, err
			}
			if module == nil {
				return nil, fmt.Errorf("server returned no module")
			}
			created = module
			return func() { a.store.ReplaceModule(*module) }, nil
		},
		success: "Module created",
		failure: "Failed to create module",
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ModuleUpdate — частичное обновление модуля. Type и ID, если заданы,
// обязаны совпадать с хранимым модулем: смена вида запрещена.
type ModuleUpdate struct {
	ID     string
	Type   string
	Name   *string
	Config map[string]any
}

// UpdateModule оптимистично применяет изменения и отправляет PUT с
// полным телом модуля. Поля чужих видов вычищаются перед записью.
func (a *Actions) UpdateModule(ctx context.Context, id string, updates ModuleUpdate) error {
	if _, err := a.validateModuleUpdate(id, updates); err != nil {
		return err
	}

	a.applyModuleUpdate(id, updates)
	return a.sendModule(ctx, id)
}

// QueueModuleUpdate применяет изменения немедленно, а запись откладывает
// на окно тишины модуля. Повторные изменения одного модуля коалесцируются.
func (a *Actions) QueueModuleUpdate(ctx context.Context, id string, updates ModuleUpdate) error {
	if _, err := a.validateModuleUpdate(id, updates); err != nil {
		return err
	}

	a.applyModuleUpdate(id, updates)
	a.moduleWrites.Trigger(id, func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), backgroundRequestTimeout)
		defer cancel()
		_ = a.sendModule(sendCtx, id)
	})
	return nil
}

// FlushModuleWrite немедленно отправляет отложенную запись модуля;
// вызывается при закрытии редактора и уходе фокуса с поля.
func (a *Actions) FlushModuleWrite(id string) {
	a.moduleWrites.Flush(id)
}

func (a *Actions) validateModuleUpdate(id string, updates ModuleUpdate) (model.Module, error) {
	stored, ok := a.store.Module(id)
	if !ok {
		return model.Module{}, fmt.Errorf("unknown module %q", id)
	}
	if updates.ID != "" && updates.ID != stored.ID {
		return model.Module{}, fmt.Errorf("module id mismatch: %q vs %q", updates.ID, stored.ID)
	}
	if updates.Type != "" && updates.Type != stored.Type {
		return model.Module{}, fmt.Errorf("module type cannot be changed from %q to %q", stored.Type, updates.Type)
	}
	return stored, nil
}

func (a *Actions) applyModuleUpdate(id string, updates ModuleUpdate) {
	if updates.Name != nil {
		a.store.RenameModule(id, *updates.Name)
	}
	if len(updates.Config) > 0 {
		a.store.MergeModuleConfig(id, updates.Config)
	}
}

// sendModule отправляет текущее состояние модуля из store, предварительно
// вычистив поля чужих видов. На ошибке модуль восстанавливается с сервера.
func (a *Actions) sendModule(ctx context.Context, id string) error {
	return a.run(ctx, mutation{
		name: "update_module",
		request: func(ctx context.Context) (func(), error) {
			module, ok := a.store.Module(id)
			if !ok {
				return nil, nil
			}
			module.Config = modkind.Get(module.Type).Cleanse(module.Config)
			authoritative, err := a.api.UpdateModule(ctx, module)
			if err != nil {
				return nil, err
			}
			return func() {
				if authoritative != nil {
					a.store.ReplaceModule(*authoritative)
				}
			}, nil
		},
		rollback: func(ctx context.Context) { a.refetchModule(ctx, id) },
		success:  "Module saved",
		failure:  "Failed to save module",
	})
}

// DeleteModule удаляет модуль: сперва снимает привязки во всех каналах,
// затем удаляет сам модуль. Store не трогается, пока сервер не подтвердил
// каждое удаление.
func (a *Actions) DeleteModule(ctx context.Context, id string) error {
	if _, ok := a.store.Module(id); !ok {
		return fmt.Errorf("unknown module %q", id)
	}

	return a.run(ctx, mutation{
		name: "delete_module",
		request: func(ctx context.Context) (func(), error) {
			for _, pos := range a.store.ChannelsWith(id) {
				if err := a.api.RemoveModule(ctx, pos, id); err != nil {
					return nil, fmt.Errorf("remove from channel %d: %w", pos, err)
				}
			}
			if err := a.api.DeleteModule(ctx, id); err != nil {
				return nil, err
			}
			return func() { a.store.RemoveModule(id) }, nil
		},
		success: "Module deleted",
		failure: "Failed to delete module",
	})
}

// InvokeModuleAction вызывает действие вида модуля. Возвращает признак
// перезагрузки: {reload: true} в ответе просит консоль перечитать все.
func (a *Actions) InvokeModuleAction(ctx context.Context, id, action string) (bool, error) {
	a.moduleWrites.Flush(id)

	result, err := a.api.InvokeModuleAction(ctx, id, action)
	if err != nil {
		a.store.SetStatus(model.StatusError, "Action failed")
		return false, err
	}
	if result != nil && result.Reload {
		return true, a.Load(ctx)
	}
	a.store.SetStatus(model.StatusSuccess, "Action completed")
	return false, nil
}
