package dialect_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/cibash/pkg/dialect"
)

const githubWorkflow = `name: ci
on:
  workflow_dispatch:
  workflow_call:
jobs:
  build:
    runs-on: ubuntu-latest
    steps:
      - uses: actions/checkout@v4
      - run: make test
`

const gitlabPipeline = `stages:
  - build
  - test
before_script:
  - echo starting
build:
  stage: build
  script:
    - make build
`

func TestDetect(t *testing.T) {
	tests := []struct {
		name        string
		source      string
		wantDialect dialect.Dialect
		// wantZero asserts confidence is exactly 0
		wantZero bool
	}{
		{
			name:        "github workflow with all strong keys",
			source:      githubWorkflow,
			wantDialect: dialect.GitHubActions,
		},
		{
			name:        "gitlab pipeline",
			source:      gitlabPipeline,
			wantDialect: dialect.GitLabCI,
		},
		{
			name:        "empty document",
			source:      "",
			wantDialect: dialect.Unknown,
			wantZero:    true,
		},
		{
			name:        "non-mapping root",
			source:      "- a\n- b\n",
			wantDialect: dialect.Unknown,
			wantZero:    true,
		},
		{
			name:        "malformed yaml fails soft",
			source:      "key: 'unterminated\n",
			wantDialect: dialect.Unknown,
			wantZero:    true,
		},
		{
			name:        "unrelated mapping stays unknown",
			source:      "foo: bar\nbaz: qux\n",
			wantDialect: dialect.Unknown,
			wantZero:    true,
		},
		{
			name: "weak keys alone stay below the threshold",
			source: `name: something
env: prod
`,
			wantDialect: dialect.Unknown,
		},
		{
			name: "partial github config still detected",
			source: `jobs:
  build:
    runs-on: ubuntu-latest
`,
			wantDialect: dialect.GitHubActions,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := dialect.Detect(tt.source)
			assert.Equal(t, tt.wantDialect, res.Dialect)
			if tt.wantZero {
				assert.Zero(t, res.Confidence)
			}
			if tt.wantDialect != dialect.Unknown {
				assert.Greater(t, res.Confidence, 0.15)
				assert.LessOrEqual(t, res.Confidence, 1.0)
			}
		})
	}
}

func TestDetectIdempotent(t *testing.T) {
	for _, source := range []string{githubWorkflow, gitlabPipeline, "", "foo: bar\n"} {
		first := dialect.Detect(source)
		second := dialect.Detect(source)
		require.Equal(t, first, second)
	}
}

func TestDetectNestedIndicators(t *testing.T) {
	// Indicator keys count wherever they appear, up to the depth bound.
	source := strings.Join([]string{
		"jobs:",
		"  deploy:",
		"    strategy:",
		"      matrix:",
		"        os: [ubuntu, macos]",
		"    runs-on: ${{ matrix.os }}",
		"",
	}, "\n")

	res := dialect.Detect(source)
	assert.Equal(t, dialect.GitHubActions, res.Dialect)
}
