package formatter

type terminalFormatter struct{}

func (f *terminalFormatter) ResultTemplate() string {
	return `{{header .Method -}}
{{given .Given -}}
{{range $i, $s := .Steps}}{{step $i $s}}
{{end -}}
{{if .IsSuccess -}}
{{answer .FinalAnswer -}}
{{verification .VerificationMath .VerificationStatus -}}
{{metrics .Runtime .Iterations .ClockTime -}}
{{else -}}
{{failure .ErrorMessage -}}
{{end -}}
`
}
