// Package ddb implements the store contract on a single DynamoDB table.
package ddb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/reliefhub/reliefhub-backend/internal/apperr"
	"github.com/reliefhub/reliefhub-backend/internal/models"
)

// Repo wraps a DynamoDB client and table name for all entity operations.
type Repo struct {
	DB    *dynamodb.Client
	Table string
}

// guard is a uniqueness / lookup marker item. RefID points back at the
// record the guard protects.
type guard struct {
	PK    string `dynamodbav:"PK"`
	SK    string `dynamodbav:"SK"`
	RefID string `dynamodbav:"ref_id"`
}

// awsStr is a helper to get a pointer to a string literal.
func awsStr(s string) *string { return &s }

// notExists guards a put against overwriting an existing item.
const notExists = "attribute_not_exists(PK) AND attribute_not_exists(SK)"

// isConditionalFailure reports whether err is a failed conditional put,
// either standalone or inside a cancelled transaction.
func isConditionalFailure(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return true
	}
	var tc *types.TransactionCanceledException
	if errors.As(err, &tc) {
		for _, r := range tc.CancellationReasons {
			if r.Code != nil && *r.Code == "ConditionalCheckFailed" {
				return true
			}
		}
	}
	return false
}

// keyAttrs builds the primary key attribute map.
func keyAttrs(pk, sk string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
		"SK": &types.AttributeValueMemberS{Value: sk},
	}
}

// getInto fetches one item and unmarshals it into out; missing items yield
// NotFound with the given message.
func (r *Repo) getInto(ctx context.Context, pk, sk, missing string, out any) error {
	res, err := r.DB.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &r.Table,
		Key:       keyAttrs(pk, sk),
	})
	if err != nil {
		return apperr.Internal(err)
	}
	if res.Item == nil {
		return apperr.NotFound("%s", missing)
	}
	if err := attributevalue.UnmarshalMap(res.Item, out); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// putNew inserts a marshalled item, failing with Conflict when the keys are
// already taken.
func (r *Repo) putNew(ctx context.Context, v any, conflict string) error {
	item, err := attributevalue.MarshalMap(v)
	if err != nil {
		return apperr.Internal(err)
	}
	_, err = r.DB.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &r.Table,
		Item:                item,
		ConditionExpression: awsStr(notExists),
	})
	if isConditionalFailure(err) {
		return apperr.Conflict(conflict)
	}
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// putExisting overwrites an item that must already exist.
func (r *Repo) putExisting(ctx context.Context, v any, missing string) error {
	item, err := attributevalue.MarshalMap(v)
	if err != nil {
		return apperr.Internal(err)
	}
	_, err = r.DB.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &r.Table,
		Item:                item,
		ConditionExpression: awsStr("attribute_exists(PK)"),
	})
	if isConditionalFailure(err) {
		return apperr.NotFound("%s", missing)
	}
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// scanPrefix collects every item whose PK starts with prefix and whose SK
// equals sk. Full scans are fine at coordination-tool volume.
func (r *Repo) scanPrefix(ctx context.Context, prefix, sk string, out any) error {
	var items []map[string]types.AttributeValue
	var start map[string]types.AttributeValue
	for {
		res, err := r.DB.Scan(ctx, &dynamodb.ScanInput{
			TableName:        &r.Table,
			FilterExpression: awsStr("begins_with(PK, :p) AND SK = :sk"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":p":  &types.AttributeValueMemberS{Value: prefix},
				":sk": &types.AttributeValueMemberS{Value: sk},
			},
			ExclusiveStartKey: start,
		})
		if err != nil {
			return apperr.Internal(err)
		}
		items = append(items, res.Items...)
		if res.LastEvaluatedKey == nil {
			break
		}
		start = res.LastEvaluatedKey
	}
	if err := attributevalue.UnmarshalListOfMaps(items, out); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// transactPut builds a conditional put entry for a transaction.
func (r *Repo) transactPut(v any) (types.TransactWriteItem, error) {
	item, err := attributevalue.MarshalMap(v)
	if err != nil {
		return types.TransactWriteItem{}, err
	}
	return types.TransactWriteItem{Put: &types.Put{
		TableName:           &r.Table,
		Item:                item,
		ConditionExpression: awsStr(notExists),
	}}, nil
}

// ---- Users ----

// CreateUser persists a user plus its username/email uniqueness guards in
// one transaction.
func (r *Repo) CreateUser(ctx context.Context, u models.User) error {
	u.PK, u.SK = UserKeys(u.UserID)
	writes, err := r.userWrites(u)
	if err != nil {
		return apperr.Internal(err)
	}
	_, err = r.DB.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: writes})
	if isConditionalFailure(err) {
		return apperr.Conflict("Username or email already exists")
	}
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// userWrites builds the user profile put and both uniqueness guard puts.
func (r *Repo) userWrites(u models.User) ([]types.TransactWriteItem, error) {
	userPut, err := r.transactPut(u)
	if err != nil {
		return nil, err
	}
	upk, usk := UsernameGuardKeys(u.Username)
	usernamePut, err := r.transactPut(guard{PK: upk, SK: usk, RefID: u.UserID})
	if err != nil {
		return nil, err
	}
	epk, esk := EmailGuardKeys(u.Email)
	emailPut, err := r.transactPut(guard{PK: epk, SK: esk, RefID: u.UserID})
	if err != nil {
		return nil, err
	}
	return []types.TransactWriteItem{userPut, usernamePut, emailPut}, nil
}

// CreateOfficial persists the official and appends their id to the camp's
// roster in the same transaction, so a uniqueness conflict leaves the camp
// untouched.
func (r *Repo) CreateOfficial(ctx context.Context, u models.User, campID string) error {
	u.PK, u.SK = UserKeys(u.UserID)
	writes, err := r.userWrites(u)
	if err != nil {
		return apperr.Internal(err)
	}

	cpk, csk := CampKeys(campID)
	writes = append(writes, types.TransactWriteItem{Update: &types.Update{
		TableName:           &r.Table,
		Key:                 keyAttrs(cpk, csk),
		UpdateExpression:    awsStr("SET assigned_officials = list_append(assigned_officials, :o), updated_at = :t"),
		ConditionExpression: awsStr("attribute_exists(PK)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":o": &types.AttributeValueMemberL{Value: []types.AttributeValue{
				&types.AttributeValueMemberS{Value: u.UserID},
			}},
			":t": &types.AttributeValueMemberS{Value: NowISO()},
		},
	}})

	_, err = r.DB.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: writes})
	if isConditionalFailure(err) {
		// The camp-exists check is done by the caller before building the
		// transaction, so a conditional failure here means the guards hit.
		return apperr.Conflict("Username or email already exists")
	}
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// GetUser returns the user with the given id.
func (r *Repo) GetUser(ctx context.Context, userID string) (*models.User, error) {
	pk, sk := UserKeys(userID)
	var u models.User
	if err := r.getInto(ctx, pk, sk, "User not found", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByUsername resolves the username guard, then loads the profile.
func (r *Repo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	pk, sk := UsernameGuardKeys(username)
	var g guard
	if err := r.getInto(ctx, pk, sk, "User not found", &g); err != nil {
		return nil, err
	}
	return r.GetUser(ctx, g.RefID)
}

// ---- Camps ----

// CreateCamp persists the camp and its empty inventory in one transaction,
// so a camp never appears without an inventory row.
func (r *Repo) CreateCamp(ctx context.Context, c models.Camp, inv models.Inventory) error {
	c.PK, c.SK = CampKeys(c.CampID)
	inv.PK, inv.SK = InventoryKeys(inv.CampID)

	campPut, err := r.transactPut(c)
	if err != nil {
		return apperr.Internal(err)
	}
	invPut, err := r.transactPut(inv)
	if err != nil {
		return apperr.Internal(err)
	}

	_, err = r.DB.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{campPut, invPut},
	})
	if isConditionalFailure(err) {
		return apperr.Conflict("Camp already exists")
	}
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// GetCamp returns the camp with the given id.
func (r *Repo) GetCamp(ctx context.Context, campID string) (*models.Camp, error) {
	pk, sk := CampKeys(campID)
	var c models.Camp
	if err := r.getInto(ctx, pk, sk, "Camp not found", &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCamps returns every camp.
func (r *Repo) ListCamps(ctx context.Context) ([]models.Camp, error) {
	var out []models.Camp
	if err := r.scanPrefix(ctx, "CAMP#", skProfile, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ---- Inventory ----

// GetInventory returns the inventory of the given camp.
func (r *Repo) GetInventory(ctx context.Context, campID string) (*models.Inventory, error) {
	pk, sk := InventoryKeys(campID)
	var inv models.Inventory
	if err := r.getInto(ctx, pk, sk, "Inventory not found", &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// SaveInventory replaces the stored inventory. Last write wins on
// concurrent replaces.
func (r *Repo) SaveInventory(ctx context.Context, inv models.Inventory) error {
	inv.PK, inv.SK = InventoryKeys(inv.CampID)
	return r.putExisting(ctx, inv, "Inventory not found")
}

// ListInventories returns every camp inventory.
func (r *Repo) ListInventories(ctx context.Context) ([]models.Inventory, error) {
	var out []models.Inventory
	if err := r.scanPrefix(ctx, "CAMP#", skInventory, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ---- Donations ----

// CreateDonation persists a donation plus its tracking guard in one
// transaction, enforcing tracking id uniqueness.
func (r *Repo) CreateDonation(ctx context.Context, d models.Donation) error {
	d.PK, d.SK = DonationKeys(d.DonationID)
	donPut, err := r.transactPut(d)
	if err != nil {
		return apperr.Internal(err)
	}
	tpk, tsk := TrackingGuardKeys(d.TrackingID)
	trackPut, err := r.transactPut(guard{PK: tpk, SK: tsk, RefID: d.DonationID})
	if err != nil {
		return apperr.Internal(err)
	}
	_, err = r.DB.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{donPut, trackPut},
	})
	if isConditionalFailure(err) {
		return apperr.Conflict("Tracking id already exists")
	}
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// GetDonation returns the donation with the given id.
func (r *Repo) GetDonation(ctx context.Context, donationID string) (*models.Donation, error) {
	pk, sk := DonationKeys(donationID)
	var d models.Donation
	if err := r.getInto(ctx, pk, sk, "Donation not found", &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// GetDonationByTracking resolves the tracking guard, then loads the donation.
func (r *Repo) GetDonationByTracking(ctx context.Context, trackingID string) (*models.Donation, error) {
	pk, sk := TrackingGuardKeys(trackingID)
	var g guard
	if err := r.getInto(ctx, pk, sk, "Donation not found", &g); err != nil {
		return nil, err
	}
	return r.GetDonation(ctx, g.RefID)
}

// SaveDonation overwrites an existing donation record.
func (r *Repo) SaveDonation(ctx context.Context, d models.Donation) error {
	d.PK, d.SK = DonationKeys(d.DonationID)
	return r.putExisting(ctx, d, "Donation not found")
}

// ListDonations returns every donation.
func (r *Repo) ListDonations(ctx context.Context) ([]models.Donation, error) {
	var out []models.Donation
	if err := r.scanPrefix(ctx, "DON#", skProfile, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListDonationsByDonor returns the donations submitted by one donor.
func (r *Repo) ListDonationsByDonor(ctx context.Context, donorID string) ([]models.Donation, error) {
	all, err := r.ListDonations(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.Donation
	for _, d := range all {
		if d.DonorID == donorID {
			out = append(out, d)
		}
	}
	return out, nil
}

// ---- Requests ----

// CreateRequest persists a supply request.
func (r *Repo) CreateRequest(ctx context.Context, req models.Request) error {
	req.PK, req.SK = RequestKeys(req.RequestID)
	return r.putNew(ctx, req, fmt.Sprintf("Request %s already exists", req.RequestID))
}

// GetRequest returns the request with the given id.
func (r *Repo) GetRequest(ctx context.Context, requestID string) (*models.Request, error) {
	pk, sk := RequestKeys(requestID)
	var req models.Request
	if err := r.getInto(ctx, pk, sk, "Request not found", &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// SaveRequest overwrites an existing request record.
func (r *Repo) SaveRequest(ctx context.Context, req models.Request) error {
	req.PK, req.SK = RequestKeys(req.RequestID)
	return r.putExisting(ctx, req, "Request not found")
}

// DeleteRequest removes a request record.
func (r *Repo) DeleteRequest(ctx context.Context, requestID string) error {
	pk, sk := RequestKeys(requestID)
	_, err := r.DB.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           &r.Table,
		Key:                 keyAttrs(pk, sk),
		ConditionExpression: awsStr("attribute_exists(PK)"),
	})
	if isConditionalFailure(err) {
		return apperr.NotFound("Request not found")
	}
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// ListRequests returns every request.
func (r *Repo) ListRequests(ctx context.Context) ([]models.Request, error) {
	var out []models.Request
	if err := r.scanPrefix(ctx, "REQ#", skProfile, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListRequestsByCamp returns the requests raised for one camp.
func (r *Repo) ListRequestsByCamp(ctx context.Context, campID string) ([]models.Request, error) {
	all, err := r.ListRequests(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.Request
	for _, req := range all {
		if req.CampID == campID {
			out = append(out, req)
		}
	}
	return out, nil
}
