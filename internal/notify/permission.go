package notify

type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

func (p Permission) IsValid() bool {
	switch p {
	case PermissionDefault, PermissionGranted, PermissionDenied:
		return true
	default:
		return false
	}
}

const welcomeBody = "تم تفعيل التنبيهات! سنذكرك بأوقات الذكر والصلاة 🤲"

// Setup resolves the notification permission. The user's choice stands
// in for the platform prompt; the welcome notification is raised only
// on the transition into granted.
func (s *Scheduler) Setup(userEnabled bool) bool {
	if !s.display.Supported() {
		s.log.Warn().Msg("notifications unsupported: no delivery channel")
		s.setPermission(PermissionDenied)
		return false
	}
	if !userEnabled {
		s.setPermission(PermissionDenied)
		return false
	}
	prev := s.setPermission(PermissionGranted)
	if prev != PermissionGranted {
		if err := s.display.Display(newPayload(welcomeBody, TagWelcome)); err != nil {
			s.log.Error().Err(err).Msg("welcome notification failed")
		}
	}
	return true
}

func (s *Scheduler) Permission() Permission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.permission
}

func (s *Scheduler) setPermission(p Permission) Permission {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.permission
	s.permission = p
	return prev
}
