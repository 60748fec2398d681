package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Cyclone1070/salvage/internal/disk"
	"github.com/Cyclone1070/salvage/internal/ui"
	uiservices "github.com/Cyclone1070/salvage/internal/ui/services"
	"github.com/charmbracelet/bubbles/spinner"
	"go.uber.org/zap"
)

// createRealUI builds the Bubble Tea interface.
func createRealUI(tickInterval time.Duration) *ui.UI {
	channels := ui.NewUIChannels()
	renderer := uiservices.NewGlamourRenderer()
	spinnerFactory := func() spinner.Model {
		return spinner.New(spinner.WithSpinner(spinner.Dot))
	}
	return ui.NewUI(channels, renderer, spinnerFactory, tickInterval)
}

// deviceEvents starts the hot-plug watcher. A failure only disables hot-plug.
func deviceEvents(d *Dependencies) (<-chan disk.DeviceEvent, func()) {
	if !d.Config.UI.WatchDevices {
		return nil, func() {}
	}
	watcher, err := disk.NewWatcher(disk.DeviceDir, d.Logger)
	if err != nil {
		d.Logger.Warn("device watcher disabled", zap.Error(err))
		return nil, func() {}
	}
	return watcher.Events(), func() { _ = watcher.Close() }
}

// runInteractive starts the TUI and the session loop behind it.
func runInteractive(ctx context.Context, d *Dependencies) error {
	if d == nil {
		return fmt.Errorf("dependencies not initialized")
	}

	userInterface := createRealUI(time.Duration(d.Config.UI.TickIntervalMs) * time.Millisecond)
	d.App.SetView(userInterface)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events, stopWatching := deviceEvents(d)
	defer stopWatching()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-userInterface.Ready():
		case <-ctx.Done():
			return
		}

		if !d.App.CheckPrivileges(ctx) {
			userInterface.ShowError("root privileges are required to mount and check disks")
		}
		ui.Serve(ctx, d.App, userInterface, userInterface.Commands(), events)
	}()

	go func() {
		<-ctx.Done()
		userInterface.Quit()
	}()

	err := userInterface.Start()
	cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Duration(d.Config.Disk.GracefulShutdownMs) * time.Millisecond):
		d.Logger.Warn("session loop did not stop in time")
	}

	if err != nil {
		return fmt.Errorf("UI error: %w", err)
	}
	return nil
}
