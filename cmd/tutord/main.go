// tutord runs one tutoring operation from the command line.
//
// Examples:
//
//	export MONGO_URI=... MONGO_DATABASE=boostedu
//	export MODEL_PROVIDER=openai MODEL_API_KEY=... MODEL_BASE_URL=... MODEL_DEPLOYMENT=...
//	export VECTARA_CUSTOMER_ID=... VECTARA_CORPUS_ID=... VECTARA_API_KEY=...
//	go run ./cmd/tutord -op chat -student stu-1 -content calc-101 -question "What is a derivative?"
//
//	go run ./cmd/tutord -op presentation -student stu-1 -content calc-101
//	go run ./cmd/tutord -op learn -student stu-1 -content calc-101
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/joho/godotenv"

	agents "github.com/Boost-Education-Inc/agents-package"
	"github.com/Boost-Education-Inc/agents-package/src/blob"
	"github.com/Boost-Education-Inc/agents-package/src/config"
	"github.com/Boost-Education-Inc/agents-package/src/memory"
	"github.com/Boost-Education-Inc/agents-package/src/models"
	"github.com/Boost-Education-Inc/agents-package/src/retrieval"
	"github.com/Boost-Education-Inc/agents-package/src/sink"
	"github.com/Boost-Education-Inc/agents-package/src/speech"
)

var (
	flagOp         = flag.String("op", "chat", "Operation: chat|presentation|plan|speech|recall|learn|expert")
	flagStudent    = flag.String("student", "", "Student id")
	flagContent    = flag.String("content", "", "Content/topic id")
	flagQuestion   = flag.String("question", "", "Question for chat/recall/expert")
	flagStream     = flag.Bool("stream", false, "Stream chat answers token by token")
	flagConnection = flag.String("connection", "", "Push-sink connection id (speech/streaming)")
	flagTimeout    = flag.Duration("timeout", 90*time.Second, "Overall request timeout")
)

func main() {
	flag.Parse()
	_ = godotenv.Load()
	cfg := config.FromEnv()

	ctx, cancel := context.WithTimeout(context.Background(), *flagTimeout)
	defer cancel()

	store, err := newStore(ctx, cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}

	model, err := newModel(ctx, cfg.Model)
	if err != nil {
		log.Fatalf("model: %v", err)
	}

	retriever, err := retrieval.NewClient(retrieval.ClientOptions{Bindings: store})
	if err != nil {
		log.Fatalf("retriever: %v", err)
	}

	binding := &retrieval.Binding{
		Backend: retrieval.BackendVectara,
		Vectara: &retrieval.VectaraParams{
			CustomerID: cfg.Vectara.CustomerID,
			CorpusID:   cfg.Vectara.CorpusID,
			APIKey:     cfg.Vectara.APIKey,
		},
	}

	out, err := run(ctx, cfg, store, model, retriever, binding)
	if err != nil {
		log.Fatalf("%s: %v", *flagOp, err)
	}
	fmt.Println(out)
}

type bindingStore interface {
	memory.Store
	retrieval.BindingStore
}

func newStore(ctx context.Context, cfg config.Config) (bindingStore, error) {
	if cfg.Mongo.URI != "" {
		return memory.NewMongoStore(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	}
	log.Println("MONGO_URI not set, using in-memory store")
	store := memory.NewInMemoryStore()
	if *flagStudent != "" {
		store.SeedStudent(memory.StudentProfile{ID: *flagStudent, Name: *flagStudent})
	}
	return store, nil
}

func newModel(ctx context.Context, cfg config.ModelConfig) (models.Model, error) {
	switch cfg.Provider {
	case "openai":
		return models.NewOpenAILLM(models.OpenAIConfig{
			APIKey:     cfg.APIKey,
			BaseURL:    cfg.BaseURL,
			Deployment: cfg.Deployment,
			Model:      cfg.Name,
		})
	case "claude":
		return models.NewClaudeLLM(models.ClaudeConfig{APIKey: cfg.APIKey, Model: cfg.Name})
	case "gemini":
		return models.NewGeminiLLM(ctx, models.GeminiConfig{APIKey: cfg.APIKey, Model: cfg.Name})
	case "ollama":
		return models.NewOllamaLLM(models.OllamaConfig{Host: cfg.BaseURL, Model: cfg.Name})
	case "dummy":
		return models.NewDummyLLM(""), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

func run(ctx context.Context, cfg config.Config, store bindingStore, model models.Model, retriever *retrieval.Client, binding *retrieval.Binding) (string, error) {
	switch *flagOp {
	case "chat", "presentation", "plan", "speech":
		opts := agents.TutorOptions{
			StudentID:      *flagStudent,
			ContentID:      *flagContent,
			Streaming:      *flagStream,
			Store:          store,
			Model:          model,
			Retriever:      retriever,
			ContentBinding: binding,
			Voice:          cfg.AWS.Voice,
			AudioFolder:    cfg.AWS.AudioFolder,
		}
		if *flagOp == "speech" {
			awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
			if err != nil {
				return "", err
			}
			opts.Speech = speech.NewPollySynthesizer(awsCfg)
			if opts.Audio, err = blob.NewS3Store(awsCfg, cfg.AWS.Bucket); err != nil {
				return "", err
			}
			if *flagConnection != "" {
				if opts.Out, err = sink.NewAPIGatewaySink(awsCfg, cfg.AWS.CallbackEndpoint, *flagConnection); err != nil {
					return "", err
				}
			}
		}
		tutor, err := agents.NewTutor(ctx, opts)
		if err != nil {
			return "", err
		}
		perception, err := tutorPerception(*flagOp, *flagQuestion)
		if err != nil {
			return "", err
		}
		resp, err := tutor.Respond(ctx, perception)
		if err != nil {
			return "", err
		}
		if resp.AudioURL != "" {
			return resp.AudioURL, nil
		}
		return resp.Text, nil
	case "recall", "learn":
		student, err := agents.NewStudent(ctx, agents.StudentOptions{
			StudentID: *flagStudent,
			TopicID:   *flagContent,
			Store:     store,
			Model:     model,
		})
		if err != nil {
			return "", err
		}
		if *flagOp == "recall" {
			return student.Recall(ctx, *flagQuestion)
		}
		return student.Learn(ctx, *flagContent)
	case "expert":
		expert, err := agents.NewContentExpert(ctx, agents.ContentExpertOptions{
			BindingID: *flagContent,
			Binding:   binding,
			Retriever: retriever,
			Model:     model,
		})
		if err != nil {
			return "", err
		}
		return expert.Answer(ctx, *flagQuestion)
	default:
		return "", fmt.Errorf("unknown operation %q", *flagOp)
	}
}

func tutorPerception(op, question string) (agents.Perception, error) {
	switch op {
	case "presentation":
		return agents.PresentationPerception{}, nil
	case "plan":
		return agents.LearningPlanPerception{}, nil
	case "speech":
		// Presentation markup arrives on stdin.
		markup, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, err
		}
		return agents.PresentationToSpeechPerception{PresentationHTML: string(markup)}, nil
	default:
		return agents.ChatPerception{Question: question}, nil
	}
}
