package user

import (
	"context"
	"errors"
	c "regportal/internal/core/domain/common"
	e "regportal/internal/core/domain/errors"
	"regportal/internal/core/domain/user"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type userDocument struct {
	ID                 string     `bson:"_id"`
	Email              string     `bson:"email"`
	PasswordHash       string     `bson:"password_hash"`
	Mobile             string     `bson:"mobile"`
	Address            string     `bson:"address"`
	RegistrationNumber string     `bson:"registration_number"`
	ResetToken         *string    `bson:"reset_token,omitempty"`
	ResetTokenExpiry   *time.Time `bson:"reset_token_expiry,omitempty"`
	CreatedAt          time.Time  `bson:"created_at"`
}

type MongoUserRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(collection *mongo.Collection) *MongoUserRepository {
	if collection == nil {
		panic(e.NewNilArgumentError("collection"))
	}
	return &MongoUserRepository{collection: collection}
}

func (r *MongoUserRepository) Create(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	doc := userDocument{
		ID:                 string(input.ID),
		Email:              string(input.Email),
		PasswordHash:       string(input.PasswordHash),
		Mobile:             input.Mobile,
		Address:            input.Address,
		RegistrationNumber: string(input.RegistrationNumber),
		CreatedAt:          input.CreatedAt.UTC().Truncate(time.Millisecond),
	}
	_, err = r.collection.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return u, user.ErrEmailAlreadyExists
	}
	if err != nil {
		return u, err
	}
	return decodeUser(doc)
}

func (r *MongoUserRepository) GetByEmail(ctx context.Context, email c.Email) (user.User, error) {
	return r.findOne(ctx, bson.M{"email": string(email)})
}

func (r *MongoUserRepository) GetByRegistrationNumber(
	ctx context.Context,
	number user.RegistrationNumber,
) (user.User, error) {
	return r.findOne(
		ctx,
		bson.M{"registration_number": string(number)},
		options.FindOne().SetSort(bson.D{{Key: "created_at", Value: 1}}),
	)
}

func (r *MongoUserRepository) GetByPasswordResetToken(
	ctx context.Context,
	token user.PasswordResetToken,
) (user.User, error) {
	return r.findOne(ctx, bson.M{"reset_token": string(token)})
}

func (r *MongoUserRepository) SetPasswordReset(ctx context.Context, id user.ID, reset user.PasswordReset) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": string(id)},
		bson.M{"$set": bson.M{
			"reset_token":        string(reset.Token),
			"reset_token_expiry": reset.ExpiresAt.UTC(),
		}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func (r *MongoUserRepository) ConsumePasswordReset(
	ctx context.Context,
	token user.PasswordResetToken,
	password user.PasswordHash,
) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"reset_token": string(token)},
		bson.M{
			"$set":   bson.M{"password_hash": string(password)},
			"$unset": bson.M{"reset_token": "", "reset_token_expiry": ""},
		},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return user.ErrInvalidPasswordResetToken
	}
	return nil
}

func (r *MongoUserRepository) findOne(
	ctx context.Context,
	filter bson.M,
	opts ...*options.FindOneOptions,
) (u user.User, err error) {
	var doc userDocument
	err = r.collection.FindOne(ctx, filter, opts...).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return decodeUser(doc)
}

func decodeUser(doc userDocument) (u user.User, err error) {
	u = user.User{
		ID:                 user.ID(doc.ID),
		Email:              c.Email(doc.Email),
		PasswordHash:       user.PasswordHash(doc.PasswordHash),
		Mobile:             doc.Mobile,
		Address:            doc.Address,
		RegistrationNumber: user.RegistrationNumber(doc.RegistrationNumber),
		PasswordReset:      c.None[user.PasswordReset](),
		CreatedAt:          doc.CreatedAt.UTC(),
	}

	switch {
	case doc.ResetToken != nil && doc.ResetTokenExpiry != nil:
		u.PasswordReset = c.Some(user.PasswordReset{
			Token:     user.PasswordResetToken(*doc.ResetToken),
			ExpiresAt: doc.ResetTokenExpiry.UTC(),
		})
	case doc.ResetToken != nil || doc.ResetTokenExpiry != nil:
		return u, e.NewInvalidStateError("reset token and its expiry must be set together")
	}

	if err := u.Validate(); err != nil {
		return u, err
	}
	return u, nil
}
