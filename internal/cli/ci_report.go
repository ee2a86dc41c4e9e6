package cli

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// ErrorLogMarker línea de docs/pipeline-errors.md antes de la cual se insertan las entradas.
const ErrorLogMarker = "<!-- Błędy będą automatycznie dodawane tutaj przez GitHub Actions -->"

// GitHubEnv variables de GitHub Actions que usa el reporte.
type GitHubEnv struct {
	Repository string
	SHA        string
	Ref        string
	Workflow   string
	RunID      string
	Actor      string
	EventName  string
}

// GitHubEnvFrom lee las variables GITHUB_* con la función dada (os.Getenv en producción).
func GitHubEnvFrom(getenv func(string) string) GitHubEnv {
	return GitHubEnv{
		Repository: getenv("GITHUB_REPOSITORY"),
		SHA:        getenv("GITHUB_SHA"),
		Ref:        getenv("GITHUB_REF"),
		Workflow:   getenv("GITHUB_WORKFLOW"),
		RunID:      getenv("GITHUB_RUN_ID"),
		Actor:      getenv("GITHUB_ACTOR"),
		EventName:  getenv("GITHUB_EVENT_NAME"),
	}
}

// PipelineReport título y cuerpo del issue más la entrada para el registro de errores.
type PipelineReport struct {
	Title    string
	Body     string
	LogEntry string
}

var whitespace = regexp.MustCompile(`\s+`)

// BuildPipelineReport arma el reporte de un fallo de pipeline. Los argumentos vacíos
// toman valores por defecto.
func BuildPipelineReport(env GitHubEnv, job, message, logs string, at time.Time) PipelineReport {
	if job == "" {
		job = "Unknown Job"
	}
	if message == "" {
		message = "No error message provided"
	}
	if logs == "" {
		logs = "No logs available"
	}
	shortSHA := "unknown"
	if env.SHA != "" {
		shortSHA = env.SHA
		if len(shortSHA) > 7 {
			shortSHA = shortSHA[:7]
		}
	}
	runURL := fmt.Sprintf("https://github.com/%s/actions/runs/%s", env.Repository, env.RunID)
	commitURL := fmt.Sprintf("https://github.com/%s/commit/%s", env.Repository, env.SHA)
	label := whitespace.ReplaceAllString(strings.ToLower(job), "-")

	var b strings.Builder
	b.WriteString("## 🚨 Pipeline Failure Report\n\n")
	b.WriteString("### 📋 Basic Information\n")
	fmt.Fprintf(&b, "- **Repository**: %s\n", env.Repository)
	fmt.Fprintf(&b, "- **Commit**: `%s`\n", env.SHA)
	fmt.Fprintf(&b, "- **Branch**: `%s`\n", env.Ref)
	fmt.Fprintf(&b, "- **Workflow**: %s\n", env.Workflow)
	fmt.Fprintf(&b, "- **Run ID**: %s\n", env.RunID)
	fmt.Fprintf(&b, "- **Triggered by**: %s\n", env.Actor)
	fmt.Fprintf(&b, "- **Event**: %s\n", env.EventName)
	fmt.Fprintf(&b, "- **Failed Job**: `%s`\n\n", job)
	b.WriteString("### 🔗 Links\n")
	fmt.Fprintf(&b, "- **GitHub Actions Run**: [View Run #%s](%s)\n", env.RunID, runURL)
	fmt.Fprintf(&b, "- **Commit**: [%s](%s)\n\n", shortSHA, commitURL)
	fmt.Fprintf(&b, "### ❌ Error Details\n```\n%s\n```\n\n", message)
	b.WriteString("### 📝 Full Logs\n<details>\n<summary>Click to expand full error logs</summary>\n\n")
	fmt.Fprintf(&b, "```\n%s\n```\n\n</details>\n\n", logs)
	b.WriteString("### 🏷️ Labels\n- `bug`\n- `pipeline-failure`\n")
	fmt.Fprintf(&b, "- `%s`\n\n", label)
	b.WriteString("### 📝 Notes\n- [ ] Error analyzed\n- [ ] Root cause identified\n- [ ] Fix implemented\n- [ ] Pipeline passing\n\n")
	b.WriteString("---\n*This issue was automatically created by GitHub Actions on pipeline failure.*\n")

	var e strings.Builder
	fmt.Fprintf(&e, "\n## %s\n\n", at.UTC().Format(time.RFC3339))
	fmt.Fprintf(&e, "**Commit**: `%s`  \n", env.SHA)
	fmt.Fprintf(&e, "**Job**: `%s`  \n", job)
	fmt.Fprintf(&e, "**Error**: %s  \n", message)
	fmt.Fprintf(&e, "**GitHub Run**: [Run #%s](%s)  \n", env.RunID, runURL)
	e.WriteString("**Issue**: TBD (will be updated after issue creation)\n\n")
	fmt.Fprintf(&e, "<details>\n<summary>Full Error Logs</summary>\n\n```\n%s\n```\n\n</details>\n\n---", logs)

	return PipelineReport{
		Title:    fmt.Sprintf("🚨 Pipeline Failed: %s (%s)", job, shortSHA),
		Body:     b.String(),
		LogEntry: e.String(),
	}
}

// InsertLogEntry añade la entrada antes del marcador. Sin marcador devuelve el contenido intacto y false.
func InsertLogEntry(content, entry string) (string, bool) {
	if !strings.Contains(content, ErrorLogMarker) {
		return content, false
	}
	return strings.Replace(content, ErrorLogMarker, entry+"\n\n"+ErrorLogMarker, 1), true
}

// Lines formato clave=valor de una línea que consume GitHub Actions.
func (r PipelineReport) Lines() []string {
	escape := func(s string) string { return strings.ReplaceAll(s, "\n", `\n`) }
	return []string{
		"ISSUE_TITLE=" + r.Title,
		"ISSUE_BODY=" + escape(r.Body),
		"ERROR_LOG_ENTRY=" + escape(r.LogEntry),
	}
}

// CIReportCmd imprime el issue de un fallo de pipeline a partir de las variables GITHUB_*.
func CIReportCmd() *cobra.Command {
	var errorLog string
	cmd := &cobra.Command{
		Use:   "ci-report [job] [message] [logs]",
		Short: "Genera el issue de un fallo de pipeline",
		Args:  cobra.MaximumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			arg := func(i int) string {
				if i < len(args) {
					return args[i]
				}
				return ""
			}
			report := BuildPipelineReport(GitHubEnvFrom(os.Getenv), arg(0), arg(1), arg(2), time.Now())

			if errorLog != "" {
				if err := appendErrorLog(errorLog, report.LogEntry); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "❌ Failed to update error log: %v\n", err)
				} else {
					fmt.Fprintf(cmd.ErrOrStderr(), "✅ Error log updated in %s\n", errorLog)
				}
			}
			for _, line := range report.Lines() {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&errorLog, "error-log", "", "archivo markdown donde registrar el fallo (p. ej. docs/pipeline-errors.md)")
	return cmd
}

func appendErrorLog(path, entry string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	updated, ok := InsertLogEntry(string(raw), entry)
	if !ok {
		return fmt.Errorf("marcador no encontrado en %s", path)
	}
	return os.WriteFile(path, []byte(updated), 0o644)
}
