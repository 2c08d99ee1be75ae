package repository

import (
	"context"
	"errors"
	"time"

	"cobre_payment_plug/internal/domain/entities"
	"cobre_payment_plug/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultTransactionsTableName = "transactions"

type transactionItem struct {
	PaymentReference string  `dynamodbav:"payment_reference"`
	Amount           float64 `dynamodbav:"amount"`
	Currency         string  `dynamodbav:"currency"`
	Status           string  `dynamodbav:"status"`
	FullName         string  `dynamodbav:"full_name"`
	Email            string  `dynamodbav:"email"`
	CellPhone        string  `dynamodbav:"cell_phone,omitempty"`
	Document         string  `dynamodbav:"document,omitempty"`
	DocumentType     string  `dynamodbav:"document_type,omitempty"`
	Description      string  `dynamodbav:"description,omitempty"`
	ProductReference string  `dynamodbav:"product_reference"`
	PaymentMethod    string  `dynamodbav:"payment_method"`
	CreatedAt        string  `dynamodbav:"created_at"`
	UpdatedAt        string  `dynamodbav:"updated_at"`
}

// TransactionDynamoRepository persists Transaction entities in DynamoDB.
//
// Table requirements:
//   - PK: payment_reference (string)
//
// Using the processor-issued payment reference as PK gives us reference
// uniqueness for free via a conditional put, and makes the webhook lookup a
// single consistent GetItem.

type TransactionDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ITransactionRepository = (*TransactionDynamoRepository)(nil)

func NewTransactionDynamoRepository(ddb *dynamodb.Client) *TransactionDynamoRepository {
	return &TransactionDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("TRANSACTIONS_TABLE", defaultTransactionsTableName),
	}
}

func (r *TransactionDynamoRepository) Create(ctx context.Context, t entities.Transaction) (entities.Transaction, error) {
	it := toTransactionItem(t)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Transaction{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#ref)"),
		ExpressionAttributeNames: map[string]string{
			"#ref": "payment_reference",
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Transaction{}, interfaces.ErrDuplicatePaymentReference
		}
		return entities.Transaction{}, err
	}
	return t, nil
}

func (r *TransactionDynamoRepository) GetByReference(ctx context.Context, paymentReference string) (entities.Transaction, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"payment_reference": &types.AttributeValueMemberS{Value: paymentReference},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Transaction{}, err
	}
	if len(out.Item) == 0 {
		return entities.Transaction{}, nil
	}

	var it transactionItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Transaction{}, err
	}
	return fromTransactionItem(it), nil
}

// MarkTerminal moves a PENDING transaction to the given terminal status with
// a single conditional update. The condition on the current status is what
// makes duplicate webhook delivery race-free: of N concurrent callers exactly
// one sees changed == true, the rest fall through to the replay/conflict
// classification below.
func (r *TransactionDynamoRepository) MarkTerminal(ctx context.Context, paymentReference string, status entities.TransactionStatus) (bool, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"payment_reference": &types.AttributeValueMemberS{Value: paymentReference},
		},
		ConditionExpression: aws.String("attribute_exists(#ref) AND #status = :pending"),
		UpdateExpression:    aws.String("SET #status = :status, #updated_at = :updated_at"),
		ExpressionAttributeNames: map[string]string{
			"#ref":        "payment_reference",
			"#status":     "status",
			"#updated_at": "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pending":    &types.AttributeValueMemberS{Value: string(entities.TransactionStatusPending)},
			":status":     &types.AttributeValueMemberS{Value: string(status)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		},
	})
	if err == nil {
		return true, nil
	}

	var cfe *types.ConditionalCheckFailedException
	if !errors.As(err, &cfe) {
		return false, err
	}

	// The transaction was not PENDING anymore. Same terminal status means a
	// harmless redelivery; a different one is a conflict we refuse to
	// auto-resolve.
	current, gerr := r.GetByReference(ctx, paymentReference)
	if gerr != nil {
		return false, gerr
	}
	if current.PaymentReference == "" {
		return false, err
	}
	if current.Status == status {
		return false, nil
	}
	return false, interfaces.ErrInvalidStatusTransition
}

func toTransactionItem(t entities.Transaction) transactionItem {
	return transactionItem{
		PaymentReference: t.PaymentReference,
		Amount:           t.Amount,
		Currency:         t.Currency,
		Status:           string(t.Status),
		FullName:         t.FullName,
		Email:            t.Email,
		CellPhone:        t.CellPhone,
		Document:         t.Document,
		DocumentType:     t.DocumentType,
		Description:      t.Description,
		ProductReference: t.ProductReference,
		PaymentMethod:    t.PaymentMethod,
		CreatedAt:        t.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:        t.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromTransactionItem(it transactionItem) entities.Transaction {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	return entities.Transaction{
		PaymentReference: it.PaymentReference,
		Amount:           it.Amount,
		Currency:         it.Currency,
		Status:           entities.TransactionStatus(it.Status),
		FullName:         it.FullName,
		Email:            it.Email,
		CellPhone:        it.CellPhone,
		Document:         it.Document,
		DocumentType:     it.DocumentType,
		Description:      it.Description,
		ProductReference: it.ProductReference,
		PaymentMethod:    it.PaymentMethod,
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}
}
