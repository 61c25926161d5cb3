package headlessterm

// SetNotificationProvider sets the provider for desktop notification requests (OSC 9/99).
func (t *Terminal) SetNotificationProvider(p NotificationProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.notificationProvider = p
}

// NotificationProvider returns the current desktop notification provider.
func (t *Terminal) NotificationProvider() NotificationProvider {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.notificationProvider
}

// DesktopNotification delivers a parsed OSC 9/99 desktop notification request
// to the configured provider. A non-empty return value from the provider
// (used to answer PayloadType "?" capability queries) is written back via
// the response provider.
func (t *Terminal) DesktopNotification(payload *NotificationPayload) {
	if t.middleware != nil && t.middleware.DesktopNotification != nil {
		t.middleware.DesktopNotification(payload, t.desktopNotificationInternal)
		return
	}
	t.desktopNotificationInternal(payload)
}

func (t *Terminal) desktopNotificationInternal(payload *NotificationPayload) {
	t.mu.RLock()
	provider := t.notificationProvider
	t.mu.RUnlock()
	if provider == nil {
		return
	}
	response := provider.Notify(payload)
	if response != "" {
		t.writeResponseString(response)
	}
}
