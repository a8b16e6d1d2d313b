package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"

	"github.com/dmitrijs2005/authd/internal/common"
	sc "github.com/dmitrijs2005/authd/internal/server/config"
)

func newProvider() *CognitoProvider {
	return NewCognitoProvider(&sc.Config{
		AWSRegion:          "us-east-1",
		AWSAccessKeyID:     "key",
		AWSSecretAccessKey: "secret",
		CognitoUserPoolID:  "pool-1",
		CognitoEndpoint:    "http://127.0.0.1:9229",
	})
}

func stubClientSeams(t *testing.T) {
	t.Helper()
	origLoad := loadDefaultAWSConfig
	origNew := newCognitoClientFromConfig
	origCreate := adminCreateUser
	origSetPw := adminSetUserPassword
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newCognitoClientFromConfig = origNew
		adminCreateUser = origCreate
		adminSetUserPassword = origSetPw
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			if err := fn(&lo); err != nil {
				t.Fatalf("load options fn error: %v", err)
			}
		}
		if lo.Region != "us-east-1" {
			t.Fatalf("region not applied: %q", lo.Region)
		}
		return aws.Config{}, nil
	}
	newCognitoClientFromConfig = func(cfg aws.Config, optFns ...func(*cognitoidentityprovider.Options)) *cognitoidentityprovider.Client {
		var opts cognitoidentityprovider.Options
		for _, fn := range optFns {
			fn(&opts)
		}
		if opts.BaseEndpoint == nil || *opts.BaseEndpoint != "http://127.0.0.1:9229" {
			t.Fatalf("BaseEndpoint not applied: %v", opts.BaseEndpoint)
		}
		return &cognitoidentityprovider.Client{}
	}
}

func TestCreateIdentity_Success(t *testing.T) {
	stubClientSeams(t)
	p := newProvider()

	var gotUsername, gotPassword string
	var gotPermanent bool

	adminCreateUser = func(c *cognitoidentityprovider.Client, ctx context.Context, in *cognitoidentityprovider.AdminCreateUserInput) (*cognitoidentityprovider.AdminCreateUserOutput, error) {
		if *in.UserPoolId != "pool-1" {
			t.Fatalf("pool mismatch: %q", *in.UserPoolId)
		}
		if in.MessageAction != types.MessageActionTypeSuppress {
			t.Fatalf("invitation message not suppressed")
		}
		gotUsername = *in.Username
		return &cognitoidentityprovider.AdminCreateUserOutput{
			User: &types.UserType{
				Username: in.Username,
				Attributes: []types.AttributeType{
					{Name: aws.String("email"), Value: in.Username},
					{Name: aws.String("sub"), Value: aws.String("ext-123")},
				},
			},
		}, nil
	}
	adminSetUserPassword = func(c *cognitoidentityprovider.Client, ctx context.Context, in *cognitoidentityprovider.AdminSetUserPasswordInput) (*cognitoidentityprovider.AdminSetUserPasswordOutput, error) {
		gotPassword = *in.Password
		gotPermanent = in.Permanent
		return &cognitoidentityprovider.AdminSetUserPasswordOutput{}, nil
	}

	id, err := p.CreateIdentity(context.Background(), "a@x.com", "pw123", "Ann")
	if err != nil {
		t.Fatalf("CreateIdentity error: %v", err)
	}
	if id != "ext-123" {
		t.Fatalf("external id mismatch: %q", id)
	}
	if gotUsername != "a@x.com" || gotPassword != "pw123" || !gotPermanent {
		t.Fatalf("unexpected provider calls: username=%q password=%q permanent=%v", gotUsername, gotPassword, gotPermanent)
	}
}

func TestCreateIdentity_CreateFails(t *testing.T) {
	stubClientSeams(t)
	p := newProvider()

	adminCreateUser = func(c *cognitoidentityprovider.Client, ctx context.Context, in *cognitoidentityprovider.AdminCreateUserInput) (*cognitoidentityprovider.AdminCreateUserOutput, error) {
		return nil, errors.New("UsernameExistsException")
	}

	_, err := p.CreateIdentity(context.Background(), "a@x.com", "pw123", "Ann")
	if !errors.Is(err, common.ErrProvider) {
		t.Fatalf("want common.ErrProvider, got %v", err)
	}
}

func TestCreateIdentity_SetPasswordFails(t *testing.T) {
	stubClientSeams(t)
	p := newProvider()

	adminCreateUser = func(c *cognitoidentityprovider.Client, ctx context.Context, in *cognitoidentityprovider.AdminCreateUserInput) (*cognitoidentityprovider.AdminCreateUserOutput, error) {
		return &cognitoidentityprovider.AdminCreateUserOutput{
			User: &types.UserType{Attributes: []types.AttributeType{{Name: aws.String("sub"), Value: aws.String("ext-1")}}},
		}, nil
	}
	adminSetUserPassword = func(c *cognitoidentityprovider.Client, ctx context.Context, in *cognitoidentityprovider.AdminSetUserPasswordInput) (*cognitoidentityprovider.AdminSetUserPasswordOutput, error) {
		return nil, errors.New("InvalidPasswordException")
	}

	_, err := p.CreateIdentity(context.Background(), "a@x.com", "pw", "Ann")
	if !errors.Is(err, common.ErrProvider) {
		t.Fatalf("want common.ErrProvider, got %v", err)
	}
}

func TestCreateIdentity_NoSubAttribute(t *testing.T) {
	stubClientSeams(t)
	p := newProvider()

	adminCreateUser = func(c *cognitoidentityprovider.Client, ctx context.Context, in *cognitoidentityprovider.AdminCreateUserInput) (*cognitoidentityprovider.AdminCreateUserOutput, error) {
		return &cognitoidentityprovider.AdminCreateUserOutput{User: &types.UserType{}}, nil
	}
	adminSetUserPassword = func(c *cognitoidentityprovider.Client, ctx context.Context, in *cognitoidentityprovider.AdminSetUserPasswordInput) (*cognitoidentityprovider.AdminSetUserPasswordOutput, error) {
		return &cognitoidentityprovider.AdminSetUserPasswordOutput{}, nil
	}

	_, err := p.CreateIdentity(context.Background(), "a@x.com", "pw", "Ann")
	if !errors.Is(err, common.ErrProvider) {
		t.Fatalf("want common.ErrProvider, got %v", err)
	}
}

func TestCreateIdentity_ConfigLoadFails(t *testing.T) {
	stubClientSeams(t)
	p := newProvider()

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}

	_, err := p.CreateIdentity(context.Background(), "a@x.com", "pw", "Ann")
	if !errors.Is(err, common.ErrProvider) {
		t.Fatalf("want common.ErrProvider, got %v", err)
	}
}
