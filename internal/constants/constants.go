package constants

// 图片验证码有效期，单位：秒
const ImageCodeRedisExpires = 300

// 短信验证码有效期，单位：秒
const SMSCodeRedisExpires = 300

// 短信验证码模板编号
const SMSTemplateID = 1

// 点击排行展示的最多新闻数量
const ClickRankMaxNews = 6

// 首页每页新闻数量
const HomePageMaxNews = 10

// 用户收藏页每页新闻数量
const UserCollectionMaxNews = 10

// 用户关注页每页用户数量
const UserFollowedMaxCount = 4

// 个人中心新闻列表每页数量
const UserNewsPageMaxCount = 10

// 后台用户列表每页数量
const AdminUserPageMaxCount = 10

// 后台新闻审核列表每页数量
const AdminNewsReviewPageMaxCount = 10

// 后台新闻编辑列表每页数量
const AdminNewsEditPageMaxCount = 10
