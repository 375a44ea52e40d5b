package config

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options. Written by
// 'speclog config init'.
func GetDefaultConfigTemplate() string {
	return `# Speclog Configuration
# See 'speclog config show' for the effective values

# Working log file; created by extraction and rewritten by every stage
log_file: /root/rpmbuild/SPECS/gitlog

# Packaging spec file the final changelog is appended to
spec_file: /root/rpmbuild/SPECS/containerd.spec

# Only commits after this timestamp are extracted (git --after)
since: "2022-01-05 00:00:00"

# Git executable (name on PATH or absolute path)
git_cmd: git

# Companion tree: extracted first, every entry tagged with the marker
companion:
  path: /root/rpmbuild/runc
  marker: RUNC

# Primary tree: extracted second, appended untagged
primary:
  path: /root/rpmbuild/containerd.io
`
}

// GetDefaults returns the default configuration values. They mirror the
// paths the original build script hard-coded so a bare 'speclog generate'
// behaves identically inside the rpmbuild environment.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"log_file":  "/root/rpmbuild/SPECS/gitlog",
		"spec_file": "/root/rpmbuild/SPECS/containerd.spec",
		"since":     "2022-01-05 00:00:00",
		"git_cmd":   "git",
		"companion": map[string]interface{}{
			"path":   "/root/rpmbuild/runc",
			"marker": "RUNC",
		},
		"primary": map[string]interface{}{
			"path":   "/root/rpmbuild/containerd.io",
			"marker": "",
		},
	}
}
