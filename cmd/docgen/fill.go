package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/docgen-client/internal/backend"
	"github.com/jonathan/docgen-client/internal/generate"
	"github.com/jonathan/docgen-client/internal/observability"
	"github.com/jonathan/docgen-client/internal/schema"
	"github.com/jonathan/docgen-client/internal/session"
	"github.com/jonathan/docgen-client/internal/types"
)

var (
	fillBackend string
	fillConfig  string
	fillOutput  string
	fillVerbose bool
)

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Fill out a document interactively and generate a PDF",
	Long:  `Walk through the fields for a chosen document type, assemble the generation payload and submit it to the backend. The resulting PDF is written to the output directory.`,
	RunE:  runFill,
}

func init() {
	fillCmd.Flags().StringVar(&fillBackend, "backend", "", "Base URL of the generation backend")
	fillCmd.Flags().StringVar(&fillConfig, "config", "", "Path to a JSON config file")
	fillCmd.Flags().StringVarP(&fillOutput, "output", "o", "", "Directory to write the generated PDF to")
	fillCmd.Flags().BoolVarP(&fillVerbose, "verbose", "v", false, "Print a session summary before submitting")
	rootCmd.AddCommand(fillCmd)
}

func runFill(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(fillConfig, fillBackend, 0)
	if err != nil {
		return err
	}
	if fillOutput != "" {
		cfg.OutputDir = fillOutput
	}
	if fillVerbose {
		cfg.Verbose = true
	}

	opts := backend.DefaultOptions()
	opts.Timeout = time.Duration(cfg.RequestTimeoutSecs) * time.Second
	client, err := backend.New(cfg.BackendURL, opts)
	if err != nil {
		return fmt.Errorf("failed to create backend client: %w", err)
	}
	orch := generate.New(client, generate.NewArtifactStore())

	sess, err := fillSession(newSurveyPrompter())
	if err != nil {
		return err
	}

	if cfg.Verbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintSession(sess)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Submitting generation request...")
	art, err := orch.Generate(cmd.Context(), sess)
	if err != nil {
		return fmt.Errorf("%s", generate.UserMessage(err))
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(cfg.OutputDir, art.Filename)
	if err := os.WriteFile(path, art.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if cfg.Verbose {
		observability.NewPrinter(cmd.OutOrStdout()).PrintArtifact(art, path)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", path, len(art.Data))
	}
	return nil
}

// fillSession drives the interactive flow and returns a session ready for
// submission. The prompter indirection keeps the flow testable without a
// terminal.
func fillSession(p prompter) (*session.Session, error) {
	docType, err := p.Select("Document type:", types.DocTypes)
	if err != nil {
		return nil, err
	}
	sess, err := session.New(docType)
	if err != nil {
		return nil, err
	}

	guided, err := p.Confirm("Use guided mode (AI drafting hints)?", false)
	if err != nil {
		return nil, err
	}
	if guided {
		if err := sess.SetMode(types.ModeGuided); err != nil {
			return nil, err
		}
		ctxText, err := p.Multiline("Context for the AI (job posting, program notes, ...):")
		if err != nil {
			return nil, err
		}
		sess.SetField(session.FieldAIContext, ctxText)
	}

	if err := promptScalars(p, sess); err != nil {
		return nil, err
	}

	if docType == types.DocTypeResume {
		if err := promptCollections(p, sess); err != nil {
			return nil, err
		}
	}
	return sess, nil
}

// promptScalars asks for the base identity fields and the document type's
// own scalar fields, skipping mirrored fields whose input was already
// collected.
func promptScalars(p prompter, sess *session.Session) error {
	s, err := schema.ForDocType(sess.DocType())
	if err != nil {
		return err
	}

	asked := make(map[string]bool)
	for _, spec := range append(append([]schema.FieldSpec{}, schema.BaseIdentity...), s.Scalars...) {
		if asked[spec.InputName] {
			continue
		}
		asked[spec.InputName] = true

		value, err := p.Input(fieldLabel(spec.InputName) + ":")
		if err != nil {
			return err
		}
		sess.SetField(spec.InputName, value)
	}
	return nil
}

// promptCollections runs the add loops for the five repeatable resume
// sections.
func promptCollections(p prompter, sess *session.Session) error {
	if err := promptTextLoop(p, sess, session.CollectionSkills, session.FieldSkillInput, "Add a skill (empty to finish):"); err != nil {
		return err
	}
	if err := promptTextLoop(p, sess, session.CollectionAchievements, session.FieldAchievementInput, "Add an achievement (empty to finish):"); err != nil {
		return err
	}

	entries := []struct {
		collection string
		question   string
		fields     []collectionField
	}{
		{session.CollectionExperience, "Add an experience entry?", []collectionField{
			{session.FieldExpTitle, "Title:", false},
			{session.FieldExpCompany, "Company:", false},
			{session.FieldExpPeriod, "Period:", false},
			{session.FieldExpPoints, "Bullet points (one per line):", true},
		}},
		{session.CollectionProjects, "Add a project?", []collectionField{
			{session.FieldProjName, "Project name:", false},
			{session.FieldProjStack, "Tech stack:", false},
			{session.FieldProjDesc, "Description:", true},
		}},
		{session.CollectionEducation, "Add an education entry?", []collectionField{
			{session.FieldEduDegree, "Degree:", false},
			{session.FieldEduInstitute, "Institute:", false},
			{session.FieldEduYear, "Year:", false},
			{session.FieldEduGrade, "Grade:", false},
		}},
	}
	for _, e := range entries {
		if err := promptEntryLoop(p, sess, e.collection, e.question, e.fields); err != nil {
			return err
		}
	}
	return nil
}

type collectionField struct {
	input     string
	label     string
	multiline bool
}

func promptTextLoop(p prompter, sess *session.Session, collection, input, message string) error {
	for {
		value, err := p.Input(message)
		if err != nil {
			return err
		}
		if strings.TrimSpace(value) == "" {
			return nil
		}
		sess.SetField(input, value)
		if err := sess.Add(collection); err != nil {
			return err
		}
	}
}

func promptEntryLoop(p prompter, sess *session.Session, collection, question string, fields []collectionField) error {
	for {
		more, err := p.Confirm(question, false)
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
		for _, f := range fields {
			var value string
			if f.multiline {
				value, err = p.Multiline(f.label)
			} else {
				value, err = p.Input(f.label)
			}
			if err != nil {
				return err
			}
			sess.SetField(f.input, value)
		}
		if err := sess.Add(collection); err != nil {
			var v *session.ValidationError
			if errors.As(err, &v) {
				fmt.Fprintln(os.Stderr, v.Message)
				continue
			}
			return err
		}
	}
}

// fieldLabel turns an input name like receiver_salutation into a prompt
// label.
func fieldLabel(name string) string {
	label := strings.ReplaceAll(name, "_", " ")
	if label == "" {
		return label
	}
	return strings.ToUpper(label[:1]) + label[1:]
}
