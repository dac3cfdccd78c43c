package classify

import "github.com/capsync-labs/capsync/internal/workspace"

// Requirement names one signal a rule needs. A rule matches only when every
// requirement is present in the scanned set (rules never partially match).
type Requirement struct {
	Kind workspace.SignalKind
	Ref  string
}

// Rule is one entry in the classification table. Its weight is the number
// of requirements, so more specific rules outscore broader ones whenever
// both match.
type Rule struct {
	Stack    string
	Layer    string
	Requires []Requirement
}

// Weight returns the rule's specificity weight.
func (r Rule) Weight() int {
	return len(r.Requires)
}

func fileExists(pattern string) Requirement {
	return Requirement{Kind: workspace.FileExists, Ref: pattern}
}

func manifestKey(keyPath string) Requirement {
	return Requirement{Kind: workspace.ManifestKey, Ref: keyPath}
}

// DefaultRules is the built-in classification table. Order matters: when
// two rules score equally, the earlier entry wins under the default
// tie-break policy, so more specific rules are listed first.
var DefaultRules = []Rule{
	{
		Stack: "react-next", Layer: "frontend",
		Requires: []Requirement{
			fileExists("next.config.*"),
			manifestKey("dependencies.next"),
			manifestKey("dependencies.react"),
		},
	},
	{
		Stack: "react-vite", Layer: "frontend",
		Requires: []Requirement{
			fileExists("vite.config.*"),
			manifestKey("dependencies.react"),
		},
	},
	{
		Stack: "vue-vite", Layer: "frontend",
		Requires: []Requirement{
			fileExists("vite.config.*"),
			manifestKey("dependencies.vue"),
		},
	},
	{
		Stack: "nuxt", Layer: "frontend",
		Requires: []Requirement{
			fileExists("nuxt.config.*"),
			manifestKey("dependencies.nuxt"),
		},
	},
	{
		Stack: "svelte", Layer: "frontend",
		Requires: []Requirement{
			fileExists("svelte.config.*"),
			manifestKey("dependencies.svelte"),
		},
	},
	{
		Stack: "angular", Layer: "frontend",
		Requires: []Requirement{
			fileExists("angular.json"),
			manifestKey("dependencies.@angular/core"),
		},
	},
	{
		Stack: "node-express", Layer: "backend",
		Requires: []Requirement{
			fileExists("package.json"),
			manifestKey("dependencies.express"),
		},
	},
	{
		Stack: "node-fastify", Layer: "backend",
		Requires: []Requirement{
			fileExists("package.json"),
			manifestKey("dependencies.fastify"),
		},
	},
	{
		Stack: "node-typescript", Layer: "backend",
		Requires: []Requirement{
			fileExists("package.json"),
			manifestKey("devDependencies.typescript"),
		},
	},
	{
		Stack: "go", Layer: "backend",
		Requires: []Requirement{
			fileExists("go.mod"),
		},
	},
	{
		Stack: "rust", Layer: "backend",
		Requires: []Requirement{
			fileExists("Cargo.toml"),
		},
	},
	{
		Stack: "python", Layer: "backend",
		Requires: []Requirement{
			fileExists("pyproject.toml"),
		},
	},
	{
		Stack: "python-pip", Layer: "backend",
		Requires: []Requirement{
			fileExists("requirements.txt"),
		},
	},
	{
		Stack: "jvm-maven", Layer: "backend",
		Requires: []Requirement{
			fileExists("pom.xml"),
		},
	},
	{
		Stack: "jvm-gradle", Layer: "backend",
		Requires: []Requirement{
			fileExists("build.gradle"),
		},
	},
	{
		Stack: "node", Layer: "backend",
		Requires: []Requirement{
			fileExists("package.json"),
		},
	},
}
