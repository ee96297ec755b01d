package present

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ichi0g0y/lucky-by-birthday/internal/shared/logger"
	"github.com/ichi0g0y/lucky-by-birthday/internal/types"
	"go.uber.org/zap"
)

const msgMissingBirthDate = "생년월일은 필수입니다."

type formField struct {
	label  string
	target func(*types.BirthFields) *types.FlexString
}

var formFields = []formField{
	{"태어난 연도 (필수)", func(f *types.BirthFields) *types.FlexString { return &f.Year }},
	{"월 (필수)", func(f *types.BirthFields) *types.FlexString { return &f.Month }},
	{"일 (필수)", func(f *types.BirthFields) *types.FlexString { return &f.Day }},
	{"시 (선택, 0-23)", func(f *types.BirthFields) *types.FlexString { return &f.Hour }},
	{"분 (선택, 0-59)", func(f *types.BirthFields) *types.FlexString { return &f.Minute }},
}

// Session is the form -> result -> reset loop.
type Session struct {
	provider Provider
	renderer *Renderer
	in       *bufio.Scanner
	out      io.Writer

	fields types.BirthFields
	result *Result
}

func NewSession(provider Provider, renderer *Renderer, in io.Reader, out io.Writer) *Session {
	return &Session{
		provider: provider,
		renderer: renderer,
		in:       bufio.NewScanner(in),
		out:      out,
	}
}

// Run loops until the user quits or input ends.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "Lucky By Birthday")
	fmt.Fprintln(s.out, "생년월일로 나만의 행운 번호를 찾아보세요")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := s.readForm(); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		if !s.fields.HasDate() {
			fmt.Fprintln(s.out, msgMissingBirthDate)
			continue
		}

		if err := s.Submit(ctx); err != nil {
			// 失敗時はエラーをそのまま表示してフォームに戻る
			fmt.Fprintln(s.out, err.Error())
			continue
		}

		if err := s.renderer.Render(s.result); err != nil {
			logger.Warn("Failed to render result", zap.Error(err))
		}

		again, err := s.askAgain()
		if err != nil || !again {
			return nil
		}
		s.Reset()
	}
}

// Submit calls the provider once for the current fields.
func (s *Session) Submit(ctx context.Context) error {
	if !s.fields.HasDate() {
		return fmt.Errorf("%s", msgMissingBirthDate)
	}
	if l, ok := s.provider.(Loader); ok {
		fmt.Fprintln(s.out, l.LoadingMessage())
	}

	result, err := s.provider.Provide(ctx, s.fields)
	if err != nil {
		logger.Debug("Provider failed", zap.String("provider", s.provider.Name()), zap.Error(err))
		return err
	}
	s.result = result
	return nil
}

// Reset clears the form and any derived result.
func (s *Session) Reset() {
	s.fields = types.BirthFields{}
	s.result = nil
}

func (s *Session) Fields() types.BirthFields {
	return s.fields
}

func (s *Session) Result() *Result {
	return s.result
}

func (s *Session) readForm() error {
	fmt.Fprintln(s.out)
	for _, field := range formFields {
		value, err := s.prompt(field.label + ": ")
		if err != nil {
			return err
		}
		*field.target(&s.fields) = types.FlexString(value)
	}
	return nil
}

func (s *Session) askAgain() (bool, error) {
	answer, err := s.prompt("[r] 다시 하기  [q] 종료: ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "q", "quit", "exit":
		return false, nil
	default:
		return true, nil
	}
}

func (s *Session) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}
