package deps

import (
	"context"
	"regportal/internal/config"
	"regportal/internal/core/domain/health"
	dl "regportal/internal/core/domain/logging"
	"regportal/internal/core/domain/user"
	"regportal/internal/db"
	dbuser "regportal/internal/db/user"
	"regportal/internal/implementations/email"
	"regportal/internal/implementations/identity"
	"regportal/internal/implementations/logging"
	passwordhasher "regportal/internal/implementations/password_hasher"
	resettoken "regportal/internal/implementations/reset_token"
	mdb "regportal/internal/mongo"
	mdbuser "regportal/internal/mongo/user"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/jackc/pgx/v4/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
)

const connectTimeout = 10 * time.Second

type Deps struct {
	Config *config.Config
	Logger dl.Logger

	DB    *pgxpool.Pool
	Mongo *mongo.Client

	Now func() time.Time

	UserRepository user.UserRepository
	DatabasePinger health.Pinger

	PasswordHasher           user.PasswordHasher
	UserIDGenerator          user.IDGenerator
	PasswordResetTokenIssuer user.PasswordResetTokenIssuer
	PasswordResetTokenSender user.PasswordResetTokenSender
}

func InitDeps() (*Deps, func()) {
	deps := &Deps{}

	deps.initConfig()
	closeLogger := deps.initLogger()
	closeStore := deps.initStore()

	deps.Now = func() time.Time { return time.Now().UTC() }
	deps.PasswordHasher = passwordhasher.NewBcrypt(deps.Config.Secret, deps.Config.BcryptHasherCost)
	deps.UserIDGenerator = identity.NewUUID()
	deps.PasswordResetTokenIssuer = resettoken.NewIssuer(deps.Config.PasswordResetValidDuration, deps.Now)
	deps.PasswordResetTokenSender = deps.initMailer()

	return deps, func() {
		closeFuncs := []func(){
			closeStore,
		}

		var wg sync.WaitGroup
		wg.Add(len(closeFuncs))
		for _, closeFunc := range closeFuncs {
			closeFunc := closeFunc
			go func() {
				closeFunc()
				wg.Done()
			}()
		}

		wg.Wait()
		closeLogger()
	}
}

func (deps *Deps) initConfig() {
	config, err := config.Load()
	if err != nil {
		panic(err)
	}
	deps.Config = config
}

func (deps *Deps) initLogger() func() {
	logger := logging.NewZapLogger(deps.Config.LogDevelopment)
	deps.Logger = logger
	return func() { logger.Sync() }
}

func (deps *Deps) initStore() func() {
	backend, err := deps.Config.StoreBackend()
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not choose credential store.", dl.Entry("err", err))
		panic(err)
	}
	deps.Logger.Info(context.Background(), "Credential store selected.", dl.Entry("backend", backend))

	switch backend {
	case config.MongodbStore:
		return deps.initMongo()
	default:
		return deps.initPgxPool()
	}
}

func (deps *Deps) initPgxPool() func() {
	if err := db.ApplyMigrations(deps.Config.DatabaseURL); err != nil {
		deps.Logger.Error(context.Background(), "Could not apply DB migrations.", dl.Entry("err", err))
		panic(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	pool, err := db.Connect(ctx, deps.Config.DatabaseURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to DB.", dl.Entry("err", err))
		panic(err)
	}
	deps.DB = pool
	deps.UserRepository = dbuser.NewPgxRepository(pool)
	deps.DatabasePinger = db.NewPinger(pool)

	return func() {
		deps.Logger.Info(context.Background(), "Shutting down DB connection.")
		pool.Close()
		deps.Logger.Info(context.Background(), "DB connection shut down.")
	}
}

func (deps *Deps) initMongo() func() {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mdb.Connect(ctx, deps.Config.DatabaseURL)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not connect to MongoDB.", dl.Entry("err", err))
		panic(err)
	}
	collection := client.Database(deps.Config.DatabaseName).Collection(deps.Config.DatabaseCollection)
	if err := mdb.EnsureIndexes(ctx, collection); err != nil {
		deps.Logger.Error(context.Background(), "Could not create MongoDB indexes.", dl.Entry("err", err))
		panic(err)
	}

	deps.Mongo = client
	deps.UserRepository = mdbuser.NewMongoRepository(collection)
	deps.DatabasePinger = mdb.NewPinger(client)

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()

		deps.Logger.Info(ctx, "Shutting down MongoDB client.")
		if err := client.Disconnect(ctx); err != nil {
			deps.Logger.Error(ctx, "Could not disconnect MongoDB client.", dl.Entry("err", err))
			return
		}
		deps.Logger.Info(ctx, "MongoDB client shut down.")
	}
}

func (deps *Deps) initMailer() user.PasswordResetTokenSender {
	cfg := deps.Config
	switch cfg.MailBackend {
	case config.SESMail:
		return email.NewSESSender(deps.initAwsConfig(), cfg.MailSender, cfg.PublicBaseURL)
	default:
		sender, err := email.NewSMTPSender(
			cfg.MailSMTPHost,
			cfg.MailSMTPPort,
			cfg.MailUsername,
			cfg.MailPassword,
			cfg.MailSender,
			cfg.PublicBaseURL,
		)
		if err != nil {
			panic(err)
		}
		return sender
	}
}

func (deps *Deps) initAwsConfig() aws.Config {
	options := []func(*awsConfig.LoadOptions) error{
		awsConfig.WithRegion(deps.Config.AwsRegion),
		awsConfig.WithRetryer(func() aws.Retryer {
			return retry.AddWithMaxAttempts(
				retry.AddWithMaxBackoffDelay(retry.NewStandard(), time.Second*5),
				3,
			)
		}),
	}
	if deps.Config.AwsAccessKey != "" {
		options = append(options, awsConfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				deps.Config.AwsAccessKey,
				deps.Config.AwsSecretKey,
				"",
			),
		))
	}

	cfg, err := awsConfig.LoadDefaultConfig(context.Background(), options...)
	if err != nil {
		deps.Logger.Error(context.Background(), "Could not load AWS config.", dl.Entry("err", err))
		panic(err)
	}
	return cfg
}
