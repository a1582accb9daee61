package formatter

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/fatih/color"

	"github.com/7noue/Indefinite-Integration-Generator-Basic-Patterns/internal/types"
)

var (
	titleStyle   = color.New(color.FgHiWhite, color.Bold)
	methodStyle  = color.New(color.FgCyan, color.Bold)
	labelStyle   = color.New(color.FgYellow, color.Bold)
	stepStyle    = color.New(color.FgHiBlue, color.Bold)
	answerStyle  = color.New(color.FgGreen, color.Bold)
	successStyle = color.New(color.FgGreen)
	warningStyle = color.New(color.FgHiYellow)
	errorStyle   = color.New(color.FgRed, color.Bold)
	lineStyle    = color.New(color.FgHiBlack)
	noStyle      = color.New(color.FgWhite)
)

// resultFormatter is the interface that wraps the ResultTemplate method.
// Implementations describe one output surface for a derivation record.
type resultFormatter interface {
	ResultTemplate() string
}

// Terminal renders a derivation record for colored terminal output.
func Terminal(result *types.Result) string {
	return buildResult(result, &terminalFormatter{})
}

// Markdown renders a derivation record as a markdown document.
func Markdown(result *types.Result) string {
	return buildResult(result, &markdownFormatter{})
}

/***** Result Formatter Builder *****/

type ResultData struct {
	Given              string
	Method             string
	Steps              []string
	FinalAnswer        string
	VerificationMath   string
	VerificationStatus string
	Runtime            string
	Iterations         string
	ClockTime          string
	ErrorMessage       string
	IsSuccess          bool
}

func buildResult(result *types.Result, formatter resultFormatter) string {
	math, status := splitVerification(result.Verification)

	data := ResultData{
		Given:              result.Given,
		Method:             result.Method,
		Steps:              result.Steps,
		FinalAnswer:        result.FinalAnswer,
		VerificationMath:   math,
		VerificationStatus: status,
		Runtime:            result.Summary.Runtime,
		Iterations:         result.Summary.Iterations,
		ClockTime:          result.Summary.ClockTime(),
		ErrorMessage:       result.ErrorMessage,
		IsSuccess:          result.IsSuccess,
	}

	funcMap := template.FuncMap{
		"header":       header,
		"given":        given,
		"step":         step,
		"answer":       answer,
		"verification": verification,
		"metrics":      metrics,
		"failure":      failure,
		"mathBlock":    mathBlock,
		"inc":          inc,
	}

	tmpl := template.Must(template.New("result").Funcs(funcMap).Parse(formatter.ResultTemplate()))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Sprintf("Error formatting result: %v", err)
	}
	return buf.String()
}

// splitVerification separates the back-check formula from the verdict
// line that follows it.
func splitVerification(verification string) (string, string) {
	math, status, found := strings.Cut(verification, "\n\n")
	if !found {
		return verification, ""
	}
	return math, status
}

// utils functions used in the text templates

func header(method string) string {
	endString := titleStyle.Sprintf("Solution\n")
	if method != "" {
		endString += methodStyle.Sprintf("Method: %s\n", method)
	}
	return endString
}

func given(latex string) string {
	if latex == "" {
		return ""
	}
	return labelStyle.Sprint("Given: ") + noStyle.Sprintf("%s\n", latex)
}

func step(index int, text string) string {
	return stepStyle.Sprintf("Step %d. ", index+1) + noStyle.Sprint(text)
}

func answer(latex string) string {
	return answerStyle.Sprintf("Final Answer: %s\n", latex)
}

func verification(math, status string) string {
	endString := labelStyle.Sprint("Verification:\n")
	endString += noStyle.Sprintf("  %s\n", math)
	if status != "" {
		endString += "  " + verdict(status)
	}
	return endString
}

// verdict strips the markdown emphasis markers from the verdict line
// and colors it by outcome.
func verdict(status string) string {
	plain := strings.ReplaceAll(status, "**", "")
	if strings.Contains(plain, "Verification Successful") {
		return successStyle.Sprintf("%s\n", plain)
	}
	return warningStyle.Sprintf("%s\n", plain)
}

func metrics(runtime, iterations, clock string) string {
	return lineStyle.Sprintf("Runtime: %s  Iterations: %s  Computed At: %s\n", runtime, iterations, clock)
}

func failure(message string) string {
	return errorStyle.Sprintf("%s\n", message)
}

func mathBlock(latex string) string {
	return fmt.Sprintf("```math\n%s\n```\n", latex)
}

func inc(i int) int {
	return i + 1
}
