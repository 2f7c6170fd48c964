package domain

import "github.com/supabase-community/supabase-go"

type SupabaseClient interface {
	Initialize() error
	ValidateToken(token string) (*SupabaseUser, error)

	// ServiceClient returns a client authenticated with the service role key.
	// It bypasses row level security and must only be used server side.
	ServiceClient() (*supabase.Client, error)
}
