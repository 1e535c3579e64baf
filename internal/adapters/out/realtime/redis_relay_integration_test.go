package realtime_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"fooddelivery/internal/adapters/out/realtime"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

type RedisRelayIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	addr      string
}

func (suite *RedisRelayIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	suite.Require().NoError(err)
	suite.container = container

	endpoint, err := container.Endpoint(ctx, "")
	suite.Require().NoError(err)
	suite.addr = endpoint
}

func (suite *RedisRelayIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *RedisRelayIntegrationTestSuite) newRelay(hub *realtime.Hub) *realtime.RedisRelay {
	client := redis.NewClient(&redis.Options{Addr: suite.addr})
	suite.T().Cleanup(func() { _ = client.Close() })

	relay := realtime.NewRedisRelay(client, hub, "", zap.NewNop())
	suite.Require().NoError(relay.Start(context.Background()))
	suite.T().Cleanup(relay.Stop)
	return relay
}

func (suite *RedisRelayIntegrationTestSuite) TestPublish_ReachesConnectionOnAnotherInstance() {
	t := suite.T()
	hubA, hubB := realtime.NewHub(zap.NewNop()), realtime.NewHub(zap.NewNop())
	relayA := suite.newRelay(hubA)
	suite.newRelay(hubB)

	user := kernel.NewUUID()
	conn := dial(t, serveHub(t, hubB), hubB, user, 1)

	n := newNotification(t, user)
	relayA.Publish(context.Background(), user, n)

	event := readEvent(t, conn)
	suite.Equal(realtime.EventNotification, event.Event)
	var payload realtime.NotificationPayload
	suite.Require().NoError(json.Unmarshal(event.Data, &payload))
	suite.Equal(n.ID().String(), payload.ID)
}

func (suite *RedisRelayIntegrationTestSuite) TestPublish_RedisDown_DeliversLocally() {
	t := suite.T()
	hub := realtime.NewHub(zap.NewNop())
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 200 * time.Millisecond})
	t.Cleanup(func() { _ = client.Close() })
	relay := realtime.NewRedisRelay(client, hub, "", zap.NewNop())

	user := kernel.NewUUID()
	conn := dial(t, serveHub(t, hub), hub, user, 1)

	relay.Publish(context.Background(), user, newNotification(t, user))

	suite.Equal(realtime.EventNotification, readEvent(t, conn).Event)
}

func TestRedisRelayIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(RedisRelayIntegrationTestSuite))
}
