package auth

// WithVerifier replaces the password check of s.
func WithVerifier(s *Service, verify func(hash, clear string) error) *Service {
	s.verify = verify
	return s
}
