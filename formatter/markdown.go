package formatter

type markdownFormatter struct{}

func (f *markdownFormatter) ResultTemplate() string {
	return `## Solution

{{if .Method}}**Method:** {{.Method}}

{{end}}{{if .Given}}**Given:**
{{mathBlock .Given}}
{{end}}{{range $i, $s := .Steps}}**Step {{inc $i}}.**
{{mathBlock $s}}
{{end}}{{if .IsSuccess}}**Final Answer:**
{{mathBlock .FinalAnswer}}
**Verification:**
{{mathBlock .VerificationMath}}
{{.VerificationStatus}}

_Runtime: {{.Runtime}} | Iterations: {{.Iterations}} | Computed At: {{.ClockTime}}_
{{else}}{{.ErrorMessage}}
{{end}}`
}
