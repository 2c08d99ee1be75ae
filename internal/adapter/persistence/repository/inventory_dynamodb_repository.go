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

const (
	defaultInventoryTableName      = "inventory"
	inventoryProductReferenceIndex = "product_reference-index"
)

type inventoryUnitItem struct {
	ID                     string  `dynamodbav:"id"`
	ProductReference       string  `dynamodbav:"product_reference"`
	Name                   string  `dynamodbav:"name"`
	PriceAmount            float64 `dynamodbav:"price_amount"`
	ActivationKey          string  `dynamodbav:"activation_key,omitempty"`
	ActivationInstructions string  `dynamodbav:"activation_instructions,omitempty"`
	SellerMail             string  `dynamodbav:"seller_mail,omitempty"`
	Status                 string  `dynamodbav:"status"`
	CreatedAt              string  `dynamodbav:"created_at"`
	UpdatedAt              string  `dynamodbav:"updated_at"`
}

// InventoryDynamoRepository persists InventoryUnit entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: product_reference-index (PK: product_reference)

type InventoryDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IInventoryRepository = (*InventoryDynamoRepository)(nil)

func NewInventoryDynamoRepository(ddb *dynamodb.Client) *InventoryDynamoRepository {
	return &InventoryDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("INVENTORY_TABLE", defaultInventoryTableName),
	}
}

func (r *InventoryDynamoRepository) Create(ctx context.Context, u entities.InventoryUnit) (entities.InventoryUnit, error) {
	if u.Status == "" {
		u.Status = entities.InventoryUnitStatusAvailable
	}
	it := toInventoryUnitItem(u)
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.InventoryUnit{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.InventoryUnit{}, err
	}
	return u, nil
}

func (r *InventoryDynamoRepository) GetByID(ctx context.Context, id string) (entities.InventoryUnit, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.InventoryUnit{}, err
	}
	if len(out.Item) == 0 {
		return entities.InventoryUnit{}, nil
	}

	var it inventoryUnitItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.InventoryUnit{}, err
	}
	return fromInventoryUnitItem(it), nil
}

// AllocateUnit reserves one AVAILABLE unit matching the product reference and
// exact price, flipping it to SOLD in the same conditional update. Candidates
// come from the GSI, but the sale itself never trusts that read: each attempt
// re-checks AVAILABLE inside the UpdateItem condition, so two concurrent
// webhooks racing for the last unit cannot both win. A zero unit with nil
// error means nothing was eligible.
func (r *InventoryDynamoRepository) AllocateUnit(ctx context.Context, productReference string, expectedPrice float64) (entities.InventoryUnit, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(inventoryProductReferenceIndex),
		KeyConditionExpression: aws.String("product_reference = :ref"),
		FilterExpression:       aws.String("#status = :available AND price_amount = :price"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ref":       &types.AttributeValueMemberS{Value: productReference},
			":available": &types.AttributeValueMemberS{Value: string(entities.InventoryUnitStatusAvailable)},
			":price":     &types.AttributeValueMemberN{Value: floatToString(expectedPrice)},
		},
	})
	if err != nil {
		return entities.InventoryUnit{}, err
	}

	for _, raw := range out.Items {
		var it inventoryUnitItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return entities.InventoryUnit{}, err
		}

		unit, won, err := r.trySell(ctx, it.ID)
		if err != nil {
			return entities.InventoryUnit{}, err
		}
		if won {
			return unit, nil
		}
		// Lost the race for this unit; move on to the next candidate.
	}

	return entities.InventoryUnit{}, nil
}

func (r *InventoryDynamoRepository) trySell(ctx context.Context, id string) (entities.InventoryUnit, bool, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id) AND #status = :available"),
		UpdateExpression:    aws.String("SET #status = :sold, #updated_at = :updated_at"),
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#status":     "status",
			"#updated_at": "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":available":  &types.AttributeValueMemberS{Value: string(entities.InventoryUnitStatusAvailable)},
			":sold":       &types.AttributeValueMemberS{Value: string(entities.InventoryUnitStatusSold)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.InventoryUnit{}, false, nil
		}
		return entities.InventoryUnit{}, false, err
	}

	var it inventoryUnitItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.InventoryUnit{}, false, err
	}
	return fromInventoryUnitItem(it), true, nil
}

func toInventoryUnitItem(u entities.InventoryUnit) inventoryUnitItem {
	return inventoryUnitItem{
		ID:                     u.ID,
		ProductReference:       u.ProductReference,
		Name:                   u.Name,
		PriceAmount:            u.PriceAmount,
		ActivationKey:          u.ActivationKey,
		ActivationInstructions: u.ActivationInstructions,
		SellerMail:             u.SellerMail,
		Status:                 string(u.Status),
		CreatedAt:              u.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:              u.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromInventoryUnitItem(it inventoryUnitItem) entities.InventoryUnit {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	return entities.InventoryUnit{
		ID:                     it.ID,
		ProductReference:       it.ProductReference,
		Name:                   it.Name,
		PriceAmount:            it.PriceAmount,
		ActivationKey:          it.ActivationKey,
		ActivationInstructions: it.ActivationInstructions,
		SellerMail:             it.SellerMail,
		Status:                 entities.InventoryUnitStatus(it.Status),
		CreatedAt:              createdAt,
		UpdatedAt:              updatedAt,
	}
}
