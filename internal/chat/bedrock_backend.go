package chat

import (
	"context"
	"errors"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
)

// BedrockConverseAPI is the subset of the Bedrock runtime client we call.
type BedrockConverseAPI interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

// BedrockBackend answers through the Bedrock Converse API.
type BedrockBackend struct {
	api     BedrockConverseAPI
	modelID string
}

func NewBedrockBackend(api BedrockConverseAPI, modelID string) (*BedrockBackend, error) {
	if api == nil {
		return nil, errors.New("chat: bedrock client is required")
	}
	if strings.TrimSpace(modelID) == "" {
		return nil, errors.New("chat: bedrock model id is required")
	}
	return &BedrockBackend{api: api, modelID: modelID}, nil
}

func (b *BedrockBackend) Name() string { return "bedrock" }

func (b *BedrockBackend) Reply(ctx context.Context, message string) (string, error) {
	out, err := b.api.Converse(ctx, &bedrockruntime.ConverseInput{
		ModelId: aws.String(b.modelID),
		System: []brtypes.SystemContentBlock{
			&brtypes.SystemContentBlockMemberText{Value: systemPrompt},
		},
		Messages: []brtypes.Message{{
			Role: brtypes.ConversationRoleUser,
			Content: []brtypes.ContentBlock{
				&brtypes.ContentBlockMemberText{Value: message},
			},
		}},
		InferenceConfig: &brtypes.InferenceConfiguration{
			MaxTokens: aws.Int32(512),
		},
	})
	if err != nil {
		return "", err
	}
	return bedrockOutputText(out)
}

func bedrockOutputText(out *bedrockruntime.ConverseOutput) (string, error) {
	if out == nil || out.Output == nil {
		return "", errors.New("chat: bedrock returned no output")
	}
	msg, ok := out.Output.(*brtypes.ConverseOutputMemberMessage)
	if !ok {
		return "", errors.New("chat: bedrock returned an unexpected output type")
	}
	var text strings.Builder
	for _, block := range msg.Value.Content {
		if t, ok := block.(*brtypes.ContentBlockMemberText); ok {
			text.WriteString(t.Value)
		}
	}
	return strings.TrimSpace(text.String()), nil
}
