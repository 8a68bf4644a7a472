package agents

import (
	"context"
	"errors"

	"github.com/Boost-Education-Inc/agents-package/src/models"
	"github.com/Boost-Education-Inc/agents-package/src/prompts"
	"github.com/Boost-Education-Inc/agents-package/src/retrieval"
)

// ContentExpertOptions configure an expert over one content index. Either
// BindingID (an existing binding) or Binding (parameters registered on first
// use) must be supplied.
type ContentExpertOptions struct {
	BindingID string
	Binding   *retrieval.Binding
	Retriever *retrieval.Client
	Model     models.Model
}

// ContentExpert answers questions about the content behind its retriever
// binding. It is stateless: no memory records are read or written.
type ContentExpert struct {
	bindingID string
	retriever *retrieval.Client
	model     models.Model
}

func NewContentExpert(ctx context.Context, opts ContentExpertOptions) (*ContentExpert, error) {
	if opts.Retriever == nil {
		return nil, errors.New("agents: content expert requires a retrieval client")
	}
	if opts.Model == nil {
		return nil, errors.New("agents: content expert requires a completion model")
	}
	bindingID, err := opts.Retriever.Resolve(ctx, opts.BindingID, opts.Binding)
	if err != nil {
		return nil, err
	}
	return &ContentExpert{
		bindingID: bindingID,
		retriever: opts.Retriever,
		model:     opts.Model,
	}, nil
}

// Answer surveys the bound content with the canonical section query and
// answers the question from the retrieved passages.
func (e *ContentExpert) Answer(ctx context.Context, question string) (string, error) {
	chunks, err := e.retriever.Retrieve(ctx, e.bindingID, contentSurveyQuery)
	if err != nil {
		return "", err
	}
	prompt, err := prompts.ContentQA.Render(map[string]string{
		"question":       question,
		"content_chunks": chunks,
	})
	if err != nil {
		return "", err
	}
	return e.model.Generate(ctx, prompt)
}
