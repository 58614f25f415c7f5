package envstruct_test

import (
	"github.com/intinc/platformexplorer/internal/envstruct"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
	"time"
)

func TestPopulate(t *testing.T) {
	type args struct {
		v         any
		lookupEnv func(string) (string, bool)
	}
	tests := []struct {
		name    string
		args    args
		want    any
		wantErr error
	}{
		{
			name: "nil",
			args: args{
				v:         nil,
				lookupEnv: func(_ string) (string, bool) { return "", false },
			},
			want:    nil,
			wantErr: envstruct.ErrInvalidValue,
		},
		{
			name: "not pointer",
			args: args{
				v:         struct{}{},
				lookupEnv: func(_ string) (string, bool) { return "", false },
			},
			want:    nil,
			wantErr: envstruct.ErrInvalidValue,
		},
		{
			name: "empty struct",
			args: args{
				v:         &struct{}{},
				lookupEnv: func(_ string) (string, bool) { return "", false },
			},
			want:    &struct{}{},
			wantErr: nil,
		},
		{
			name: "empty env",
			args: args{
				v: &struct { //nolint:exhaustruct // populated later
					EnvVar string `env:"ENV_VAR"`
				}{},
				lookupEnv: func(_ string) (string, bool) { return "", false },
			},
			want:    nil,
			wantErr: envstruct.ErrEnvNotSet,
		},
		{
			name: "env is set",
			args: args{
				v: &struct { //nolint:exhaustruct // populated later
					EnvVar string `env:"ENV_VAR"`
				}{},
				lookupEnv: func(_ string) (string, bool) { return "env_var", true },
			},
			want:    &struct{ EnvVar string }{EnvVar: "env_var"},
			wantErr: nil,
		},
		{
			name: "picks correct env variable",
			args: args{
				v: &struct { //nolint:exhaustruct // populated later
					EnvVar      string `env:"ENV_VAR"`
					EnvVar2     string `env:"ENV_VAR2"`
					OtherValue  string
					OtherValue2 int
				}{},
				lookupEnv: func(s string) (string, bool) { return strings.ToLower(s), true },
			},
			want: &struct {
				EnvVar      string
				EnvVar2     string
				OtherValue  string
				OtherValue2 int
			}{EnvVar: "env_var", EnvVar2: "env_var2", OtherValue: "", OtherValue2: 0},
			wantErr: nil,
		},
		{
			name: "handles default value",
			args: args{
				v: &struct { //nolint:exhaustruct // populated later
					EnvVarDefault string `env:"ENV_VAR_DEFAULT" envDefault:"default"`
				}{},
				lookupEnv: func(_ string) (string, bool) { return "", false },
			},
			want: &struct {
				EnvVarDefault string
			}{EnvVarDefault: "default"},
			wantErr: nil,
		},
		{
			name: "parses typed fields",
			args: args{
				v: &struct { //nolint:exhaustruct // populated later
					Addr     string        `env:"PLATFORMEXPLORER_ADDR"`
					Secure   bool          `env:"PLATFORMEXPLORER_SECURE_COOKIES"`
					Workers  int           `env:"PLATFORMEXPLORER_WORKERS"`
					Lifetime time.Duration `env:"PLATFORMEXPLORER_SESSION_LIFETIME" envDefault:"12h"`
				}{},
				lookupEnv: func(s string) (string, bool) {
					switch s {
					case "PLATFORMEXPLORER_ADDR":
						return "localhost:0", true
					case "PLATFORMEXPLORER_SECURE_COOKIES":
						return "false", true
					case "PLATFORMEXPLORER_WORKERS":
						return "4", true
					default:
						return "", false
					}
				},
			},
			want: &struct {
				Addr     string
				Secure   bool
				Workers  int
				Lifetime time.Duration
			}{Addr: "localhost:0", Secure: false, Workers: 4, Lifetime: 12 * time.Hour},
			wantErr: nil,
		},
		{
			name: "unparsable bool",
			args: args{
				v: &struct { //nolint:exhaustruct // populated later
					Secure bool `env:"SECURE"`
				}{},
				lookupEnv: func(_ string) (string, bool) { return "sometimes", true },
			},
			want:    nil,
			wantErr: envstruct.ErrUnparsable,
		},
		{
			name: "unparsable duration",
			args: args{
				v: &struct { //nolint:exhaustruct // populated later
					Lifetime time.Duration `env:"LIFETIME"`
				}{},
				lookupEnv: func(_ string) (string, bool) { return "forever", true },
			},
			want:    nil,
			wantErr: envstruct.ErrUnparsable,
		},
		{
			name: "rejects unsupported types",
			args: args{
				v: &struct { //nolint:exhaustruct // populated later
					EnvVar float64 `env:"ENV_VAR"`
				}{},
				lookupEnv: func(_ string) (string, bool) { return "1.5", true },
			},
			want:    nil,
			wantErr: envstruct.ErrInvalidValue,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.args.v
			err := envstruct.Populate(v, tt.args.lookupEnv)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				require.EqualValues(t, tt.want, v)
			}
		})
	}
}
