package core

// Dispatcher fans room events out to three independent registries.
type Dispatcher struct {
	lifecycle Registry[LifecycleListener]
	presence  Registry[PresenceListener]
	localRole Registry[LocalRoleListener]
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

func (d *Dispatcher) AddLifecycleListener(l LifecycleListener) ListenerID {
	return d.lifecycle.Add(l)
}

func (d *Dispatcher) RemoveLifecycleListener(id ListenerID) bool {
	return d.lifecycle.Remove(id)
}

func (d *Dispatcher) AddPresenceListener(l PresenceListener) ListenerID {
	return d.presence.Add(l)
}

func (d *Dispatcher) RemovePresenceListener(id ListenerID) bool {
	return d.presence.Remove(id)
}

func (d *Dispatcher) AddLocalRoleListener(l LocalRoleListener) ListenerID {
	return d.localRole.Add(l)
}

func (d *Dispatcher) RemoveLocalRoleListener(id ListenerID) bool {
	return d.localRole.Remove(id)
}

// presenceDelivery holds the listeners captured for one event.
type presenceDelivery struct {
	event     PresenceEvent
	presence  []PresenceListener
	lifecycle []LifecycleListener
}

// capturePresence snapshots both presence registries. The room calls it
// while still holding its mutation lock.
func (d *Dispatcher) capturePresence(e PresenceEvent) presenceDelivery {
	return presenceDelivery{
		event:     e,
		presence:  d.presence.Snapshot(),
		lifecycle: d.lifecycle.Snapshot(),
	}
}

func (pd presenceDelivery) run() {
	for _, l := range pd.presence {
		l.MemberPresenceChanged(pd.event)
	}
	for _, l := range pd.lifecycle {
		pd.event.deliver(l)
	}
}

func (d *Dispatcher) fireLocalRole(e LocalRoleEvent) {
	for _, l := range d.localRole.Snapshot() {
		l.LocalRoleChanged(e)
	}
}
