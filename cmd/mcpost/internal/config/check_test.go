package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleParamsToml = `transport = "http"
listen = "127.0.0.1:8000"
csv_file = "data/packages.csv"
embeddings_rate = 5.0
`

func Test_runConfigCheck(t *testing.T) {
	type args struct {
		args []string
	}
	tests := []struct {
		name    string
		args    args
		content []byte
		wantErr bool
	}{
		{
			"arg set, file exists, contents valid",
			args{args: []string{filepath.Join(t.TempDir(), "test.tml")}},
			[]byte(sampleParamsToml),
			false,
		},
		{
			"arg not set",
			args{},
			nil,
			true,
		},
		{
			"arg set, file not exists",
			args{args: []string{"not_here$$$.$$$"}},
			nil,
			true,
		},
		{
			"arg set, file exists, contents invalid",
			args{args: []string{filepath.Join(t.TempDir(), "test1.tml")}},
			[]byte(`transport = "telegraph"`),
			true,
		},
		{
			"arg set, file exists, unknown key",
			args{args: []string{filepath.Join(t.TempDir(), "test2.tml")}},
			[]byte(`workers = -500`),
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// if args and content is present, create this file.
			if len(tt.args.args) > 0 && len(tt.content) > 0 {
				if err := os.WriteFile(tt.args.args[0], tt.content, 0666); err != nil {
					t.Fatal(err)
				}
			}
			if err := runConfigCheck(t.Context(), CmdConfigCheck, tt.args.args); (err != nil) != tt.wantErr {
				t.Errorf("runConfigCheck() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
