package service

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/conn-castle/allsky-automount/internal/messages"
)

const (
	systemdBusName    = "org.freedesktop.systemd1"
	systemdObjectPath = dbus.ObjectPath("/org/freedesktop/systemd1")
	managerInterface  = "org.freedesktop.systemd1.Manager"
	jobRemovedSignal  = managerInterface + ".JobRemoved"
	jobResultDone     = "done"
)

// signalBus is the part of *dbus.Conn that Start uses to follow job signals.
type signalBus interface {
	AddMatchSignalContext(ctx context.Context, options ...dbus.MatchOption) error
	RemoveMatchSignalContext(ctx context.Context, options ...dbus.MatchOption) error
	Signal(ch chan<- *dbus.Signal)
	RemoveSignal(ch chan<- *dbus.Signal)
	Close() error
}

// DBusManager talks to the user's systemd instance over the session bus.
type DBusManager struct {
	conn signalBus
	obj  dbus.BusObject
}

// ConnectDBus opens a private session bus connection to the user manager.
func ConnectDBus(ctx context.Context) (*DBusManager, error) {
	conn, err := dbus.ConnectSessionBus(dbus.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf(messages.ServiceDBusConnectFmt, err)
	}
	return &DBusManager{conn: conn, obj: conn.Object(systemdBusName, systemdObjectPath)}, nil
}

// Close releases the bus connection.
func (m *DBusManager) Close() error {
	return m.conn.Close()
}

// Reload is systemctl --user daemon-reload.
func (m *DBusManager) Reload(ctx context.Context) error {
	return m.obj.CallWithContext(ctx, managerInterface+".Reload", 0).Err
}

// Enable is systemctl --user enable unit, including the reload that makes
// the new wants-links visible to the manager.
func (m *DBusManager) Enable(ctx context.Context, unit string) error {
	call := m.obj.CallWithContext(ctx, managerInterface+".EnableUnitFiles", 0, []string{unit}, false, false)
	if call.Err != nil {
		return call.Err
	}
	var carriesInstallInfo bool
	// changes is a(sss): type, symlink, destination.
	var changes [][]interface{}
	if err := call.Store(&carriesInstallInfo, &changes); err != nil {
		return err
	}
	if !carriesInstallInfo {
		return fmt.Errorf(messages.ServiceNoInstallSectionFmt, unit)
	}
	return m.Reload(ctx)
}

// Start is systemctl --user start unit: it queues a start job and waits for
// systemd to report the job's result.
func (m *DBusManager) Start(ctx context.Context, unit string) error {
	if err := m.obj.CallWithContext(ctx, managerInterface+".Subscribe", 0).Err; err != nil {
		return err
	}
	match := []dbus.MatchOption{
		dbus.WithMatchObjectPath(systemdObjectPath),
		dbus.WithMatchInterface(managerInterface),
		dbus.WithMatchMember("JobRemoved"),
	}
	if err := m.conn.AddMatchSignalContext(ctx, match...); err != nil {
		return err
	}
	defer func() { _ = m.conn.RemoveMatchSignalContext(context.Background(), match...) }()

	signals := make(chan *dbus.Signal, 16)
	m.conn.Signal(signals)
	defer m.conn.RemoveSignal(signals)

	var job dbus.ObjectPath
	if err := m.obj.CallWithContext(ctx, managerInterface+".StartUnit", 0, unit, "replace").Store(&job); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sig, ok := <-signals:
			if !ok {
				return fmt.Errorf(messages.ServiceJobLostFmt, unit)
			}
			result, matched := jobResult(sig, job)
			if !matched {
				continue
			}
			if result != jobResultDone {
				return fmt.Errorf(messages.ServiceJobResultFmt, unit, result)
			}
			return nil
		}
	}
}

// jobResult extracts the result of a JobRemoved(u id, o job, s unit, s result)
// signal for job. matched is false for any other signal or job.
func jobResult(sig *dbus.Signal, job dbus.ObjectPath) (result string, matched bool) {
	if sig == nil || sig.Name != jobRemovedSignal || len(sig.Body) != 4 {
		return "", false
	}
	path, ok := sig.Body[1].(dbus.ObjectPath)
	if !ok || path != job {
		return "", false
	}
	result, ok = sig.Body[3].(string)
	return result, ok
}
