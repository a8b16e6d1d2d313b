package identity

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"

	"github.com/dmitrijs2005/authd/internal/common"
	sc "github.com/dmitrijs2005/authd/internal/server/config"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newCognitoClientFromConfig = func(cfg aws.Config, optFns ...func(*cognitoidentityprovider.Options)) *cognitoidentityprovider.Client {
		return cognitoidentityprovider.NewFromConfig(cfg, optFns...)
	}

	adminCreateUser = func(c *cognitoidentityprovider.Client, ctx context.Context, in *cognitoidentityprovider.AdminCreateUserInput) (*cognitoidentityprovider.AdminCreateUserOutput, error) {
		return c.AdminCreateUser(ctx, in)
	}
	adminSetUserPassword = func(c *cognitoidentityprovider.Client, ctx context.Context, in *cognitoidentityprovider.AdminSetUserPasswordInput) (*cognitoidentityprovider.AdminSetUserPasswordOutput, error) {
		return c.AdminSetUserPassword(ctx, in)
	}
)

// CognitoProvider creates identities in an AWS Cognito user pool.
type CognitoProvider struct {
	config *sc.Config
}

// NewCognitoProvider constructs a provider for the pool configured in cfg.
func NewCognitoProvider(cfg *sc.Config) *CognitoProvider {
	return &CognitoProvider{config: cfg}
}

func (p *CognitoProvider) getClient(ctx context.Context) (*cognitoidentityprovider.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(p.config.AWSRegion),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			p.config.AWSAccessKeyID,
			p.config.AWSSecretAccessKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newCognitoClientFromConfig(cfg, func(o *cognitoidentityprovider.Options) {
		if p.config.CognitoEndpoint != "" {
			o.BaseEndpoint = aws.String(p.config.CognitoEndpoint)
		}
	})

	return client, nil
}

// CreateIdentity registers the account in the user pool with a permanent
// password and returns the pool-assigned "sub" identifier. The invitation
// message is suppressed; the pool is an identity backend here, not a
// user-facing signup channel.
func (p *CognitoProvider) CreateIdentity(ctx context.Context, email, password, displayName string) (string, error) {

	client, err := p.getClient(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrProvider, err)
	}

	created, err := adminCreateUser(client, ctx, &cognitoidentityprovider.AdminCreateUserInput{
		UserPoolId:    aws.String(p.config.CognitoUserPoolID),
		Username:      aws.String(email),
		MessageAction: types.MessageActionTypeSuppress,
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String(email)},
			{Name: aws.String("name"), Value: aws.String(displayName)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrProvider, err)
	}

	_, err = adminSetUserPassword(client, ctx, &cognitoidentityprovider.AdminSetUserPasswordInput{
		UserPoolId: aws.String(p.config.CognitoUserPoolID),
		Username:   aws.String(email),
		Password:   aws.String(password),
		Permanent:  true,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrProvider, err)
	}

	externalID := externalIDFromUser(created.User)
	if externalID == "" {
		return "", fmt.Errorf("%w: no sub attribute in response", common.ErrProvider)
	}

	return externalID, nil
}

// externalIDFromUser extracts the opaque "sub" attribute assigned by the pool.
func externalIDFromUser(user *types.UserType) string {
	if user == nil {
		return ""
	}
	for _, attr := range user.Attributes {
		if attr.Name != nil && *attr.Name == "sub" && attr.Value != nil {
			return *attr.Value
		}
	}
	return ""
}
