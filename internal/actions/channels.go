package actions

import (
	"context"
	"fmt"

	"pc1console/internal/model"
	"pc1console/internal/timefmt"
)

// AssignModuleToChannel привязывает модуль к каналу. Порядок нового
// элемента — 1 + максимальный из существующих; сервер авторитетен,
// если вернул канал.
func (a *Actions) AssignModuleToChannel(ctx context.Context, pos int, moduleID string) error {
	if err := model.ValidateChannelPosition(pos); err != nil {
		return err
	}
	if _, ok := a.store.Module(moduleID); !ok {
		return fmt.Errorf("unknown module %q", moduleID)
	}

	channel := a.store.Channel(pos)
	if channel.Contains(moduleID) {
		return fmt.Errorf("module already assigned to channel %d", pos)
	}
	order := channel.NextOrder()

	return a.run(ctx, mutation{
		name: "assign_module",
		request: func(ctx context.Context) (func(), error) {
			authoritative, err := a.api.AssignModule(ctx, pos, moduleID, &order)
			if err != nil {
				return nil, err
			}
			return func() {
				if authoritative != nil {
					a.store.ReplaceChannel(pos, *authoritative)
					return
				}
				// сервер канал не вернул — достраиваем локально
				ch := a.store.Channel(pos)
				if !ch.Contains(moduleID) {
					ch.Modules = append(ch.Modules, model.ModuleRef{ModuleID: moduleID, Order: order})
					a.store.ReplaceChannel(pos, ch)
				}
			}, nil
		},
		success: "Module added to channel",
		failure: "Failed to add module to channel",
	})
}

// MoveModuleInChannel меняет местами order модуля и его соседа и
// отправляет полную карту module_id → order.
func (a *Actions) MoveModuleInChannel(ctx context.Context, pos int, moduleID, direction string) error {
	if err := model.ValidateChannelPosition(pos); err != nil {
		return err
	}
	if err := model.ValidateEnum("direction", direction, []string{"up", "down"}); err != nil {
		return err
	}

	channel := a.store.Channel(pos)
	sorted := channel.SortedModules()
	index := -1
	for i, ref := range sorted {
		if ref.ModuleID == moduleID {
			index = i
			break
		}
	}
	if index < 0 {
		return fmt.Errorf("module %q is not in channel %d", moduleID, pos)
	}

	neighbor := index - 1
	if direction == "down" {
		neighbor = index + 1
	}
	if neighbor < 0 || neighbor >= len(sorted) {
		// крайний элемент двигать некуда
		return nil
	}

	sorted[index].Order, sorted[neighbor].Order = sorted[neighbor].Order, sorted[index].Order

	orders := make(map[string]int, len(sorted))
	for _, ref := range sorted {
		orders[ref.ModuleID] = ref.Order
	}

	return a.run(ctx, mutation{
		name: "reorder_channel",
		apply: func() {
			ch := a.store.Channel(pos)
			for i, ref := range ch.Modules {
				if order, ok := orders[ref.ModuleID]; ok {
					ch.Modules[i].Order = order
				}
			}
			a.store.ReplaceChannel(pos, ch)
		},
		request: func(ctx context.Context) (func(), error) {
			authoritative, err := a.api.ReorderChannel(ctx, pos, orders)
			if err != nil {
				return nil, err
			}
			return func() {
				if authoritative != nil {
					a.store.ReplaceChannel(pos, *authoritative)
				}
			}, nil
		},
		rollback: a.refetchSettings,
		failure:  "Failed to reorder modules",
	})
}

// RemoveModuleFromChannel снимает привязку модуля к одному каналу
func (a *Actions) RemoveModuleFromChannel(ctx context.Context, pos int, moduleID string) error {
	if err := model.ValidateChannelPosition(pos); err != nil {
		return err
	}

	return a.run(ctx, mutation{
		name: "remove_module_from_channel",
		request: func(ctx context.Context) (func(), error) {
			if err := a.api.RemoveModule(ctx, pos, moduleID); err != nil {
				return nil, err
			}
			return func() {
				ch := a.store.Channel(pos)
				filtered := ch.Modules[:0:0]
				for _, ref := range ch.Modules {
					if ref.ModuleID != moduleID {
						filtered = append(filtered, ref)
					}
				}
				ch.Modules = filtered
				a.store.ReplaceChannel(pos, ch)
			}, nil
		},
		success: "Module removed from channel",
		failure: "Failed to remove module from channel",
	})
}

// UpdateSchedule записывает отсортированное расписание канала
func (a *Actions) UpdateSchedule(ctx context.Context, pos int, times []string) error {
	if err := model.ValidateChannelPosition(pos); err != nil {
		return err
	}
	for _, v := range times {
		if !timefmt.ValidHHMM(v) {
			return model.ValidationError{Field: "schedule", Message: fmt.Sprintf("invalid time %q", v)}
		}
	}
	sorted := timefmt.SortSchedule(times)

	return a.run(ctx, mutation{
		name: "update_schedule",
		request: func(ctx context.Context) (func(), error) {
			authoritative, err := a.api.SetSchedule(ctx, pos, sorted)
			if err != nil {
				return nil, err
			}
			return func() {
				if authoritative != nil {
					a.store.ReplaceChannel(pos, *authoritative)
					return
				}
				ch := a.store.Channel(pos)
				ch.Schedule = sorted
				a.store.ReplaceChannel(pos, ch)
			}, nil
		},
		rollback: a.refetchSettings,
		success:  "Schedule updated",
		failure:  "Failed to update schedule",
	})
}

// PrintChannel запускает ручную печать. Перед запросом принудительно
// уходят все отложенные записи, чтобы напечаталось именно то, что на
// экране.
func (a *Actions) PrintChannel(ctx context.Context, pos int) error {
	if err := model.ValidateChannelPosition(pos); err != nil {
		return err
	}

	a.FlushPendingWrites()

	return a.run(ctx, mutation{
		name: "print_channel",
		request: func(ctx context.Context) (func(), error) {
			return nil, a.api.PrintChannel(ctx, pos)
		},
		success: fmt.Sprintf("Printing channel %d", pos),
		failure: "Failed to print channel",
	})
}

// DebugTestWebhook запускает тестовый вебхук на устройстве
func (a *Actions) DebugTestWebhook(ctx context.Context) error {
	return a.run(ctx, mutation{
		name: "debug_test_webhook",
		request: func(ctx context.Context) (func(), error) {
			return nil, a.api.DebugTestWebhook(ctx)
		},
		success: "Webhook test triggered",
		failure: "Failed to trigger webhook test",
	})
}

// DebugPrintModule печатает один модуль в обход каналов
func (a *Actions) DebugPrintModule(ctx context.Context, id string) error {
	a.moduleWrites.Flush(id)

	return a.run(ctx, mutation{
		name: "debug_print_module",
		request: func(ctx context.Context) (func(), error) {
			return nil, a.api.DebugPrintModule(ctx, id)
		},
		success: "Printing module",
		failure: "Failed to print module",
	})
}
