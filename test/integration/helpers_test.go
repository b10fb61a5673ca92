//go:build integration
// +build integration

package integration

import (
	"context"
	"testing"

	"github.com/feedify/backend/internal/apiclient"
	appAccount "github.com/feedify/backend/internal/application/account"
	"github.com/feedify/backend/test/integration/framework"
	"github.com/stretchr/testify/require"
)

// env 一个运行中的服务及其假的外部依赖
type env struct {
	server *framework.TestServer
	llm    *framework.FakeOpenAI
	mail   *framework.FakeResend
}

func startEnv(t *testing.T, fragments ...string) *env {
	t.Helper()
	framework.RequireServerBinary(t)

	llm := framework.NewFakeOpenAI(t, fragments...)
	mail := framework.NewFakeResend(t)

	server, err := framework.NewTestServer(framework.BinaryPath, t.Name(), llm.URL(), mail.URL)
	require.NoError(t, err)
	require.NoError(t, server.Start())
	t.Cleanup(func() { _ = server.Stop() })

	return &env{server: server, llm: llm, mail: mail}
}

// register 注册、验证并登录，返回已登录的客户端
func (e *env) register(t *testing.T, username string) *apiclient.Client {
	t.Helper()
	ctx := context.Background()
	client := apiclient.New(e.server.APIURL())
	email := username + "@example.com"

	require.NoError(t, client.SignUp(ctx, &appAccount.SignUpDTO{
		Username: username,
		Email:    email,
		Password: "secret123",
	}))
	code := e.mail.CodeFor(email)
	require.Len(t, code, 6, "verification code should be delivered")
	require.NoError(t, client.Verify(ctx, username, code))

	_, err := client.SignIn(ctx, username, "secret123")
	require.NoError(t, err)
	return client
}
